package introspection

import (
	"context"
	"encoding/json"
	"testing"

	executor "github.com/fetchlab/overgraph/internal/executor"
	language "github.com/fetchlab/overgraph/internal/language"
	schema "github.com/fetchlab/overgraph/internal/schema"
	"github.com/stretchr/testify/require"
)

// noopRuntime implements executor.Runtime with no behaviour.
type noopRuntime struct{}

func (noopRuntime) ResolveField(context.Context, string, string, any, map[string]any) (any, error) {
	return nil, nil
}

func (noopRuntime) SerializeLeafValue(_ context.Context, _ string, value any) (any, error) {
	return value, nil
}

const entitySDL = `
type Query {
  user(id: ID): User
  post(id: ID!): Post
}
type User {
  id: ID!
  name: String!
  posts: [Post!]
}
type Post {
  id: ID!
  title: String!
  likes: Int!
}
`

func introspect(t *testing.T, query string) map[string]any {
	t.Helper()
	sch, err := schema.BuildFromSDL(entitySDL)
	require.NoError(t, err)
	wrapper := Wrap(noopRuntime{}, sch)
	exec := executor.NewExecutor(wrapper.Runtime, wrapper.Schema)

	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	res := exec.ExecuteRequest(context.Background(), doc, "", nil)
	require.Empty(t, res.Errors)

	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

func TestSchemaQueryType(t *testing.T) {
	data := introspect(t, `{ __schema { queryType { name kind } } }`)
	qt := data["__schema"].(map[string]any)["queryType"].(map[string]any)
	require.Equal(t, "Query", qt["name"])
	require.Equal(t, "OBJECT", qt["kind"])
}

func TestSchemaTypesIncludeEntities(t *testing.T) {
	data := introspect(t, `{ __schema { types { name } } }`)
	var names []string
	for _, item := range data["__schema"].(map[string]any)["types"].([]any) {
		names = append(names, item.(map[string]any)["name"].(string))
	}
	require.Contains(t, names, "User")
	require.Contains(t, names, "Post")
	require.Contains(t, names, "Query")
	require.NotContains(t, names, "__Schema", "meta types stay out of the advertised type list")
}

func TestTypeQueryFieldsAndWrappers(t *testing.T) {
	data := introspect(t, `{
		__type(name: "User") {
			name
			kind
			fields { name type { kind name ofType { kind name ofType { kind name } } } }
		}
	}`)
	user := data["__type"].(map[string]any)
	require.Equal(t, "User", user["name"])
	require.Equal(t, "OBJECT", user["kind"])

	byName := map[string]map[string]any{}
	for _, item := range user["fields"].([]any) {
		f := item.(map[string]any)
		byName[f["name"].(string)] = f["type"].(map[string]any)
	}

	id := byName["id"]
	require.Equal(t, "NON_NULL", id["kind"])
	require.Nil(t, id["name"])
	require.Equal(t, "ID", id["ofType"].(map[string]any)["name"])

	posts := byName["posts"]
	require.Equal(t, "LIST", posts["kind"])
	inner := posts["ofType"].(map[string]any)
	require.Equal(t, "NON_NULL", inner["kind"])
	require.Equal(t, "Post", inner["ofType"].(map[string]any)["name"])
}

func TestTypeQueryArguments(t *testing.T) {
	data := introspect(t, `{
		__type(name: "Query") {
			fields { name args { name type { kind ofType { name } name } } }
		}
	}`)
	fields := data["__type"].(map[string]any)["fields"].([]any)
	byName := map[string][]any{}
	for _, item := range fields {
		f := item.(map[string]any)
		byName[f["name"].(string)] = f["args"].([]any)
	}

	userArgs := byName["user"]
	require.Len(t, userArgs, 1)
	userID := userArgs[0].(map[string]any)
	require.Equal(t, "id", userID["name"])
	require.Equal(t, "ID", userID["type"].(map[string]any)["name"])

	postArgs := byName["post"]
	require.Len(t, postArgs, 1)
	postID := postArgs[0].(map[string]any)["type"].(map[string]any)
	require.Equal(t, "NON_NULL", postID["kind"])
	require.Equal(t, "ID", postID["ofType"].(map[string]any)["name"])
}

func TestTypeQueryUnknownTypeIsNull(t *testing.T) {
	data := introspect(t, `{ __type(name: "Nope") { name } }`)
	require.Nil(t, data["__type"])
}

func TestSchemaDirectives(t *testing.T) {
	data := introspect(t, `{ __schema { directives { name args { name } } } }`)
	var names []string
	for _, item := range data["__schema"].(map[string]any)["directives"].([]any) {
		names = append(names, item.(map[string]any)["name"].(string))
	}
	require.Contains(t, names, "skip")
	require.Contains(t, names, "include")
}

func TestBaseRuntimeStillServesEntityFields(t *testing.T) {
	sch, err := schema.BuildFromSDL(entitySDL)
	require.NoError(t, err)
	wrapper := Wrap(noopRuntime{}, sch)
	exec := executor.NewExecutor(wrapper.Runtime, wrapper.Schema)

	doc, err := language.ParseQuery(`{ user(id: "1") { name } }`)
	require.NoError(t, err)
	res := exec.ExecuteRequest(context.Background(), doc, "", nil)
	require.Empty(t, res.Errors, "entity fields must pass through to the base runtime")
}
