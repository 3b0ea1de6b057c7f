package server

import (
	"sort"
	"strings"
	"sync"
)

// User is the record managed by the demo server.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Bio    string `json:"bio"`
	Active bool   `json:"active"`
}

// Exists reports whether the user has been stored.
func (u *User) Exists() bool { return u != nil && u.ID > 0 }

// Key returns the user id.
func (u *User) Key() any { return u.ID }

// Store is an in-memory user repository.
type Store struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

// NewStore creates a store holding users; ids are assigned in order.
func NewStore(users ...User) *Store {
	s := &Store{users: make(map[int]User), nextID: 1}
	for _, user := range users {
		s.Save(user)
	}
	return s
}

// List returns every user ordered by id.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Find returns the user with id.
func (s *Store) Find(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// Save inserts a user without an id or replaces an existing one.
func (s *Store) Save(user User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID <= 0 {
		user.ID = s.nextID
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	s.users[user.ID] = user
	return user
}

// SeedUsers returns demo records.
func SeedUsers() []User {
	names := []string{"Ann Lee", "Bob Stone", "Cid Moreau", "Dee Park", "Eve Adams", "Finn Roth", "Gus Hale", "Hana Ito", "Ivo Kral", "Jo Wren", "Kai Dunn", "Lia Berg"}
	roles := []string{"admin", "editor", "viewer"}
	users := make([]User, 0, len(names))
	for i, name := range names {
		users = append(users, User{
			Name:   name,
			Email:  strings.ToLower(strings.Fields(name)[0]) + "@example.com",
			Role:   roles[i%len(roles)],
			Active: i%4 != 3,
		})
	}
	return users
}
