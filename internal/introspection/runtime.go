// Package introspection layers __schema and __type support over a base
// runtime so standard GraphQL tooling can discover the served type system.
package introspection

import (
	"context"
	"fmt"
	"sort"

	executor "github.com/fetchlab/overgraph/internal/executor"
	schema "github.com/fetchlab/overgraph/internal/schema"
)

// Wrapper holds the introspection-aware runtime and the extended schema the
// executor must be built with.
type Wrapper struct {
	Runtime executor.Runtime
	Schema  *schema.Schema
}

// Wrap extends the schema with the introspection meta types and returns a
// runtime that answers __schema/__type queries itself, delegating everything
// else to base.
func Wrap(base executor.Runtime, sch *schema.Schema) *Wrapper {
	extended := extendSchemaWithIntrospection(sch)
	return &Wrapper{
		Runtime: &runtime{base: base, originalSchema: sch},
		Schema:  extended,
	}
}

type runtime struct {
	base           executor.Runtime
	originalSchema *schema.Schema
}

func (r *runtime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	switch src := source.(type) {
	case *schema.Schema:
		if v, ok := resolveSchemaField(src, field); ok {
			return v, nil
		}
	case *schema.Type:
		if v, ok := resolveTypeField(r.originalSchema, src, field, args); ok {
			return v, nil
		}
	case *schema.TypeRef:
		return resolveTypeRefField(r.originalSchema, src, field, args), nil
	case *schema.Field:
		if v, ok := resolveFieldField(src, field, args); ok {
			return v, nil
		}
	case *schema.InputValue:
		if v, ok := resolveInputValueField(src, field); ok {
			return v, nil
		}
	case *schema.EnumValue:
		if v, ok := resolveEnumValueField(src, field); ok {
			return v, nil
		}
	case *schema.Directive:
		if v, ok := resolveDirectiveField(src, field, args); ok {
			return v, nil
		}
	}

	if objectType == "Query" {
		switch field {
		case "__schema":
			return r.originalSchema, nil
		case "__type":
			name, _ := args["name"].(string)
			if t := r.originalSchema.Types[name]; t != nil {
				return t, nil
			}
			return nil, nil
		}
	}

	return r.base.ResolveField(ctx, objectType, field, source, args)
}

func (r *runtime) SerializeLeafValue(ctx context.Context, typeName string, value any) (any, error) {
	return r.base.SerializeLeafValue(ctx, typeName, value)
}

func resolveSchemaField(sch *schema.Schema, field string) (any, bool) {
	switch field {
	case "types":
		return sortedTypes(sch), true
	case "queryType":
		return sch.GetQueryType(), true
	case "mutationType":
		return sch.GetMutationType(), true
	case "subscriptionType":
		return sch.GetSubscriptionType(), true
	case "directives":
		return sortedDirectives(sch), true
	case "description":
		return descriptionOrNil(sch.Description), true
	}
	return nil, false
}

func resolveTypeField(sch *schema.Schema, t *schema.Type, field string, args map[string]any) (any, bool) {
	switch field {
	case "kind":
		return string(t.Kind), true
	case "name":
		return t.Name, true
	case "description":
		return descriptionOrNil(t.Description), true
	case "fields":
		return typeFields(t, args), true
	case "interfaces":
		return typeInterfaces(sch, t), true
	case "possibleTypes":
		return typePossibleTypes(sch, t), true
	case "enumValues":
		return typeEnumValues(t, args), true
	case "inputFields":
		return typeInputFields(t, args), true
	case "specifiedByURL", "isOneOf", "ofType":
		// Named types carry no wrapper info and no scalar/oneOf metadata here.
		return nil, true
	}
	return nil, false
}

// resolveTypeRefField resolves __Type fields against a type reference.
// Wrapper refs (LIST, NON_NULL) expose kind/ofType only; a named ref behaves
// as the type definition it points at.
func resolveTypeRefField(sch *schema.Schema, tr *schema.TypeRef, field string, args map[string]any) any {
	switch tr.Kind {
	case schema.TypeRefKindList, schema.TypeRefKindNonNull:
		switch field {
		case "kind":
			return string(tr.Kind)
		case "ofType":
			return tr.OfType
		}
		return nil
	}
	if def := sch.Types[tr.Named]; def != nil {
		v, _ := resolveTypeField(sch, def, field, args)
		return v
	}
	return nil
}

func resolveFieldField(f *schema.Field, field string, args map[string]any) (any, bool) {
	switch field {
	case "name":
		return f.Name, true
	case "description":
		return descriptionOrNil(f.Description), true
	case "args":
		return filterInputValues(f.Arguments, args), true
	case "type":
		return f.Type, true
	case "isDeprecated":
		return f.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(f.IsDeprecated, f.DeprecationReason), true
	}
	return nil, false
}

func resolveInputValueField(a *schema.InputValue, field string) (any, bool) {
	switch field {
	case "name":
		return a.Name, true
	case "description":
		return descriptionOrNil(a.Description), true
	case "type":
		return a.Type, true
	case "defaultValue":
		if a.DefaultValue != nil {
			return fmt.Sprintf("%v", a.DefaultValue), true
		}
		return nil, true
	case "isDeprecated":
		return a.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(a.IsDeprecated, a.DeprecationReason), true
	}
	return nil, false
}

func resolveEnumValueField(ev *schema.EnumValue, field string) (any, bool) {
	switch field {
	case "name":
		return ev.Name, true
	case "description":
		return descriptionOrNil(ev.Description), true
	case "isDeprecated":
		return ev.IsDeprecated, true
	case "deprecationReason":
		return deprecationReason(ev.IsDeprecated, ev.DeprecationReason), true
	}
	return nil, false
}

func resolveDirectiveField(d *schema.Directive, field string, args map[string]any) (any, bool) {
	switch field {
	case "name":
		return d.Name, true
	case "description":
		return descriptionOrNil(d.Description), true
	case "isRepeatable":
		return d.IsRepeatable, true
	case "locations":
		locs := make([]string, len(d.Locations))
		copy(locs, d.Locations)
		return locs, true
	case "args":
		return filterInputValues(d.Arguments, args), true
	}
	return nil, false
}

func sortedTypes(sch *schema.Schema) []*schema.Type {
	out := make([]*schema.Type, 0, len(sch.Types))
	for _, t := range sch.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedDirectives(sch *schema.Schema) []*schema.Directive {
	out := make([]*schema.Directive, 0, len(sch.Directives))
	for _, d := range sch.Directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func typeFields(t *schema.Type, args map[string]any) []*schema.Field {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated")
	out := []*schema.Field{}
	for _, f := range t.Fields {
		if !includeDeprecated && f.IsDeprecated {
			continue
		}
		out = append(out, f)
	}
	return out
}

func typeInterfaces(sch *schema.Schema, t *schema.Type) []*schema.Type {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	out := []*schema.Type{}
	for _, name := range t.Interfaces {
		if def := sch.Types[name]; def != nil {
			out = append(out, def)
		}
	}
	return out
}

func typePossibleTypes(sch *schema.Schema, t *schema.Type) []*schema.Type {
	if t.Kind != schema.TypeKindInterface && t.Kind != schema.TypeKindUnion {
		return nil
	}
	out := []*schema.Type{}
	for _, name := range t.PossibleTypes {
		if def := sch.Types[name]; def != nil {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func typeEnumValues(t *schema.Type, args map[string]any) []*schema.EnumValue {
	if t.Kind != schema.TypeKindEnum {
		return nil
	}
	includeDeprecated := boolArg(args, "includeDeprecated")
	out := []*schema.EnumValue{}
	for _, ev := range t.EnumValues {
		if !includeDeprecated && ev.IsDeprecated {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func typeInputFields(t *schema.Type, args map[string]any) []*schema.InputValue {
	if t.Kind != schema.TypeKindInputObject {
		return nil
	}
	return filterInputValues(t.InputFields, args)
}

func filterInputValues(values []*schema.InputValue, args map[string]any) []*schema.InputValue {
	includeDeprecated := boolArg(args, "includeDeprecated")
	out := []*schema.InputValue{}
	for _, v := range values {
		if !includeDeprecated && v.IsDeprecated {
			continue
		}
		out = append(out, v)
	}
	return out
}

func deprecationReason(deprecated bool, reason string) any {
	if deprecated {
		return reason
	}
	return nil
}

func descriptionOrNil(desc string) any {
	if desc == "" {
		return nil
	}
	return desc
}

func boolArg(args map[string]any, name string) bool {
	if args == nil {
		return false
	}
	b, _ := args[name].(bool)
	return b
}
