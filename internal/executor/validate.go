package executor

import (
	"fmt"

	language "github.com/fetchlab/overgraph/internal/language"
	schema "github.com/fetchlab/overgraph/internal/schema"
)

// validateOperation checks one operation against the schema before any field
// is resolved. It returns every violation found so a client sees the full
// picture in a single response:
//
//   - selected fields must exist on their parent type
//   - arguments must be declared, and Non-Null arguments without a default
//     must be provided with a non-null value
//   - leaf fields must not carry a selection set, composite fields must
//   - fragment spreads must reference defined fragments, and type conditions
//     must name known types
func validateOperation(sch *schema.Schema, doc *language.QueryDocument, rootType *schema.Type, op *language.OperationDefinition) []GraphQLError {
	v := &validator{schema: sch, document: doc, visited: make(map[string]bool)}
	v.selectionSet(rootType, op.SelectionSet, Path{})
	return v.errors
}

type validator struct {
	schema   *schema.Schema
	document *language.QueryDocument
	visited  map[string]bool
	errors   []GraphQLError
}

func (v *validator) addError(message string, path Path) {
	v.errors = append(v.errors, GraphQLError{Message: message, Path: path})
}

func (v *validator) selectionSet(parent *schema.Type, selectionSet language.SelectionSet, path Path) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			v.field(parent, sel, path)
		case *language.InlineFragment:
			cond := parent
			if sel.TypeCondition != "" {
				cond = v.typeCondition(sel.TypeCondition, path)
				if cond == nil {
					continue
				}
			}
			v.selectionSet(cond, sel.SelectionSet, path)
		case *language.FragmentSpread:
			def := v.document.Fragments.ForName(sel.Name)
			if def == nil {
				v.addError(fmt.Sprintf("Unknown fragment '%s'", sel.Name), path)
				continue
			}
			if v.visited[sel.Name] {
				continue
			}
			v.visited[sel.Name] = true
			cond := v.typeCondition(def.TypeCondition, path)
			if cond == nil {
				continue
			}
			v.selectionSet(cond, def.SelectionSet, path)
		}
	}
}

func (v *validator) typeCondition(name string, path Path) *schema.Type {
	t := v.schema.Types[name]
	if t == nil {
		v.addError(fmt.Sprintf("Unknown type '%s' in fragment type condition", name), path)
	}
	return t
}

func (v *validator) field(parent *schema.Type, field *language.Field, path Path) {
	responseName := field.Alias
	if responseName == "" {
		responseName = field.Name
	}
	fieldPath := appendPath(path, responseName)

	if field.Name == "__typename" {
		if len(field.SelectionSet) > 0 {
			v.addError("Field '__typename' must not have a selection", fieldPath)
		}
		return
	}

	fieldDef := getFieldDefinition(parent, field.Name)
	if fieldDef == nil {
		v.addError(fmt.Sprintf("Cannot query field '%s' on type '%s'", field.Name, parent.Name), fieldPath)
		return
	}

	v.arguments(parent, fieldDef, field, fieldPath)

	namedType := v.schema.Types[schema.GetNamedType(fieldDef.Type)]
	if namedType == nil {
		v.addError(fmt.Sprintf("Unknown type: %s", schema.GetNamedType(fieldDef.Type)), fieldPath)
		return
	}

	switch namedType.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		if len(field.SelectionSet) > 0 {
			v.addError(fmt.Sprintf("Field '%s' must not have a selection since type '%s' has no subfields", field.Name, namedType.Name), fieldPath)
		}
	default:
		if len(field.SelectionSet) == 0 {
			v.addError(fmt.Sprintf("Field '%s' of type '%s' must have a selection of subfields", field.Name, namedType.Name), fieldPath)
			return
		}
		v.selectionSet(namedType, field.SelectionSet, fieldPath)
	}
}

func (v *validator) arguments(parent *schema.Type, fieldDef *schema.Field, field *language.Field, path Path) {
	for _, arg := range field.Arguments {
		if findArgumentDefinition(fieldDef, arg.Name) == nil {
			v.addError(fmt.Sprintf("Unknown argument '%s' on field '%s.%s'", arg.Name, parent.Name, field.Name), path)
		}
	}
	for _, argDef := range fieldDef.Arguments {
		if !schema.IsNonNull(argDef.Type) || argDef.DefaultValue != nil {
			continue
		}
		provided := field.Arguments.ForName(argDef.Name)
		if provided == nil {
			v.addError(fmt.Sprintf("Field '%s' argument '%s' of required type '%s' was not provided", field.Name, argDef.Name, typeRefString(argDef.Type)), path)
			continue
		}
		if provided.Value != nil && provided.Value.Kind == language.NullValue {
			v.addError(fmt.Sprintf("Argument '%s' of required type '%s' cannot be null", argDef.Name, typeRefString(argDef.Type)), path)
		}
	}
}

func findArgumentDefinition(fieldDef *schema.Field, name string) *schema.InputValue {
	for _, a := range fieldDef.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func typeRefString(t *schema.TypeRef) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case schema.TypeRefKindNamed:
		return t.Named
	case schema.TypeRefKindList:
		return "[" + typeRefString(t.OfType) + "]"
	case schema.TypeRefKindNonNull:
		return typeRefString(t.OfType) + "!"
	default:
		return ""
	}
}
