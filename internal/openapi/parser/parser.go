package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-htmlgrid/pkg/openapi"
)

// formMediaTypes lists request body media types in preference order.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parser reads operations with kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations keys every operation by operationId, or by "<method>:<path>"
// (method lower-cased) when it has none. Two operations claiming the same id
// are an error.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	spec, err := (&openapi3.Loader{Context: ctx, IsExternalRefsAllowed: p.options.ResolveReferences}).LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %s: %w", doc.Location(), err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: %s: invalid document: %w", doc.Location(), err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths != nil {
		items := spec.Paths.Map()
		paths := make([]string, 0, len(items))
		for path := range items {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			item := items[path]
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if err := p.add(operations, method, path, operation); err != nil {
					return nil, err
				}
			}
		}
	}
	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, fmt.Errorf("openapi parser: %s declares no operations", doc.Location())
	}
	return operations, nil
}

func (p *Parser) add(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) error {
	if operation == nil {
		return nil
	}
	id := strings.TrimSpace(operation.OperationID)
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	if existing, ok := target[id]; ok {
		return fmt.Errorf("openapi parser: operation %q declared by %s %s and %s %s",
			id, existing.Method, existing.Path, strings.ToUpper(method), path)
	}

	op, err := pkgopenapi.NewOperation(id, method, path, extractRequestSchema(operation.RequestBody))
	if err != nil {
		return err
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	target[id] = op
	return nil
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil {
		return pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema, map[*openapi3.Schema]bool{})
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema, map[*openapi3.Schema]bool{})
		}
	}
	return pkgopenapi.Schema{}
}

// convertSchema copies the fields a form needs. Cyclic references are cut at
// the second visit and keep only their $ref.
func convertSchema(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil || visiting[ref.Value] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	visiting[src] = true
	defer delete(visiting, src)

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		ReadOnly:    src.ReadOnly,
		Pattern:     src.Pattern,
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, visiting)
		}
	}
	mergeAllOf(&schema, src.AllOf, visiting)
	if src.Items != nil {
		items := convertSchema(src.Items, visiting)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	return schema
}

// mergeAllOf folds the properties and required lists of allOf members into
// target; explicit properties on target win.
func mergeAllOf(target *pkgopenapi.Schema, refs openapi3.SchemaRefs, visiting map[*openapi3.Schema]bool) {
	for _, ref := range refs {
		member := convertSchema(ref, visiting)
		if len(member.Properties) > 0 && target.Properties == nil {
			target.Properties = make(map[string]pkgopenapi.Schema, len(member.Properties))
		}
		for name, property := range member.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
		for _, name := range member.Required {
			if !target.IsRequired(name) {
				target.Required = append(target.Required, name)
			}
		}
		if target.Type == "" && member.Type != "" {
			target.Type = member.Type
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
