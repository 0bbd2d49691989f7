package schema

import (
	"fmt"
	"strconv"

	language "github.com/fetchlab/overgraph/internal/language"
)

// BuildFromSDL parses an SDL document and compiles it into a Schema.
// The builtin scalars and the @skip/@include directives are always present.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}

	s := NewSchema("")
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	s.AddDirective(includeDirective).
		AddDirective(skipDirective)

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}

	// Explicit schema { ... } block wins; otherwise fall back to the
	// conventional root type names.
	if len(doc.Schema) > 0 {
		for _, op := range doc.Schema[0].OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			case language.Subscription:
				s.SetSubscriptionType(op.Type)
			}
		}
	} else {
		for _, name := range []string{"Query", "Mutation", "Subscription"} {
			if _, ok := s.Types[name]; ok {
				switch name {
				case "Query":
					s.SetQueryType(name)
				case "Mutation":
					s.SetMutationType(name)
				case "Subscription":
					s.SetSubscriptionType(name)
				}
			}
		}
	}

	if err := checkTypeRefs(s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object, language.Interface:
		kind := TypeKindObject
		if def.Kind == language.Interface {
			kind = TypeKindInterface
		}
		t := NewType(def.Name, kind, def.Description)
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
		return t, nil
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
		return t, nil
	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, ev := range def.EnumValues {
			v := NewEnumValue(ev.Name, ev.Description)
			if reason, ok := deprecationReason(ev.Directives); ok {
				v.Deprecate(reason)
			}
			t.AddEnumValue(v)
		}
		return t, nil
	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		for _, fd := range def.Fields {
			in := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type)).
				SetDefault(astValue(fd.DefaultValue))
			t.AddInputField(in)
		}
		return t, nil
	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description), nil
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for type %s", def.Kind, def.Name)
	}
}

func buildField(fd *language.FieldDefinition) *Field {
	f := NewField(fd.Name, fd.Description, buildTypeRef(fd.Type))
	if reason, ok := deprecationReason(fd.Directives); ok {
		f.Deprecate(reason)
	}
	for _, arg := range fd.Arguments {
		in := NewInputValue(arg.Name, arg.Description, buildTypeRef(arg.Type)).
			SetDefault(astValue(arg.DefaultValue))
		f.AddArgument(in)
	}
	return f
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(buildTypeRef(t.Elem))
}

func deprecationReason(directives language.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "", true
}

// astValue converts an SDL constant (default value) into a plain Go value.
func astValue(v *language.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(v.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(v.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw
	case language.BooleanValue:
		return v.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(v.Children))
		for i, c := range v.Children {
			out[i] = astValue(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, c := range v.Children {
			m[c.Name] = astValue(c.Value)
		}
		return m
	default:
		return nil
	}
}

// checkTypeRefs verifies every referenced type name is defined.
func checkTypeRefs(s *Schema) error {
	check := func(owner string, t *TypeRef) error {
		name := GetNamedType(t)
		if name == "" {
			return fmt.Errorf("%s references an empty type", owner)
		}
		if _, ok := s.Types[name]; !ok {
			return fmt.Errorf("%s references undefined type %s", owner, name)
		}
		return nil
	}
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if err := check(t.Name+"."+f.Name, f.Type); err != nil {
				return err
			}
			for _, arg := range f.Arguments {
				if err := check(t.Name+"."+f.Name+"("+arg.Name+")", arg.Type); err != nil {
					return err
				}
			}
		}
		for _, in := range t.InputFields {
			if err := check(t.Name+"."+in.Name, in.Type); err != nil {
				return err
			}
		}
	}
	return nil
}
