package executor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// blogRuntime returns a mock runtime over two users and their posts,
// resolving entity properties out of map-shaped sources.
func blogRuntime() *MockRuntime {
	postA := map[string]any{"id": "2", "title": "Optimizing API Performance", "likes": 187}
	postB := map[string]any{"id": "4", "title": "The Future of Mobile Development", "likes": 94}
	jane := map[string]any{"id": "2", "name": "Jane Smith", "posts": []any{postA, postB}}
	john := map[string]any{"id": "1", "name": "John Doe", "posts": []any{}}

	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user": func(ctx context.Context, source any, args map[string]any) (any, error) {
			switch args["id"] {
			case "1":
				return john, nil
			case "2":
				return jane, nil
			}
			return nil, nil
		},
		"Query.users": NewMockValueResolver([]any{john, jane}),
		"Query.post": func(ctx context.Context, source any, args map[string]any) (any, error) {
			if args["id"] == "2" {
				return postA, nil
			}
			return nil, nil
		},
	})
	for _, field := range []string{"id", "name", "posts"} {
		rt.SetResolver("User", field, NewMockPropertyResolver(field))
	}
	for _, field := range []string{"id", "title", "likes"} {
		rt.SetResolver("Post", field, NewMockPropertyResolver(field))
	}
	return rt
}

func marshalData(t *testing.T, res *ExecutionResult) string {
	t.Helper()
	b, err := json.Marshal(res.Data)
	require.NoError(t, err)
	return string(b)
}

func TestExecuteNestedSelection(t *testing.T) {
	res := execute(t, blogRuntime(), `{ user(id: "2") { name posts { title } } }`, nil)

	require.Empty(t, res.Errors)
	require.Equal(t,
		`{"user":{"name":"Jane Smith","posts":[{"title":"Optimizing API Performance"},{"title":"The Future of Mobile Development"}]}}`,
		marshalData(t, res))
}

func TestExecutePreservesQueryFieldOrder(t *testing.T) {
	res := execute(t, blogRuntime(), `{ post(id: "2") { title likes id } }`, nil)

	require.Empty(t, res.Errors)
	require.Equal(t,
		`{"post":{"title":"Optimizing API Performance","likes":187,"id":"2"}}`,
		marshalData(t, res))
}

func TestExecuteAliases(t *testing.T) {
	res := execute(t, blogRuntime(), `{ a: user(id: "1") { name } b: user(id: "2") { name } }`, nil)

	require.Empty(t, res.Errors)
	require.Equal(t, `{"a":{"name":"John Doe"},"b":{"name":"Jane Smith"}}`, marshalData(t, res))
}

func TestExecuteTypename(t *testing.T) {
	res := execute(t, blogRuntime(), `{ __typename user(id: "2") { __typename name } }`, nil)

	require.Empty(t, res.Errors)
	require.Equal(t, `{"__typename":"Query","user":{"__typename":"User","name":"Jane Smith"}}`, marshalData(t, res))
}

func TestExecuteUnmatchedLookupIsNullNotError(t *testing.T) {
	res := execute(t, blogRuntime(), `{ user(id: "404") { name } }`, nil)

	require.Empty(t, res.Errors, "a miss is a normal outcome, not an error")
	require.Equal(t, `{"user":null}`, marshalData(t, res))
}

func TestExecuteVariables(t *testing.T) {
	res := execute(t, blogRuntime(), `query ($id: ID!) { user(id: $id) { name } }`, map[string]any{"id": "2"})

	require.Empty(t, res.Errors)
	require.Equal(t, `{"user":{"name":"Jane Smith"}}`, marshalData(t, res))
}

func TestExecuteMissingRequiredVariable(t *testing.T) {
	rt := blogRuntime()
	res := execute(t, rt, `query ($id: ID!) { user(id: $id) { name } }`, nil)

	require.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, "was not provided")
	require.Empty(t, rt.GetCalls())
}

func TestExecuteSkipIncludeWithVariables(t *testing.T) {
	res := execute(t, blogRuntime(),
		`query ($yes: Boolean!, $no: Boolean!) { user(id: "2") { name @include(if: $yes) id @skip(if: $yes) posts @include(if: $no) { title } } }`,
		map[string]any{"yes": true, "no": false})

	require.Empty(t, res.Errors)
	require.Equal(t, `{"user":{"name":"Jane Smith"}}`, marshalData(t, res))
}

func TestExecuteResolverErrorOnNullableField(t *testing.T) {
	rt := blogRuntime()
	rt.SetResolver("Query", "user", NewMockErrorResolver(errors.New("store unavailable")))
	res := execute(t, rt, `{ user(id: "2") { name } }`, nil)

	require.Equal(t, `{"user":null}`, marshalData(t, res))
	require.Len(t, res.Errors, 1)
	require.Equal(t, "store unavailable", res.Errors[0].Message)
	require.Equal(t, Path{"user"}, res.Errors[0].Path)
}

func TestExecuteNonNullPropagation(t *testing.T) {
	rt := blogRuntime()
	rt.SetResolver("User", "name", NewMockValueResolver(nil))
	res := execute(t, rt, `{ user(id: "2") { name } }`, nil)

	// User.name is non-null; its null propagates to the nullable user field.
	require.Equal(t, `{"user":null}`, marshalData(t, res))
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, "Cannot return null for non-nullable field user.name")
}

func TestExecuteNonNullListElementNullifiesList(t *testing.T) {
	rt := blogRuntime()
	rt.SetResolver("User", "posts", NewMockValueResolver([]any{
		map[string]any{"id": "2", "title": "Optimizing API Performance", "likes": 187},
		nil,
	}))
	res := execute(t, rt, `{ user(id: "2") { posts { title } } }`, nil)

	// [Post!] forbids null elements; the whole list becomes null.
	require.Equal(t, `{"user":{"posts":null}}`, marshalData(t, res))
	require.Len(t, res.Errors, 1)
}

func TestExecuteEmptyListStaysEmptyList(t *testing.T) {
	res := execute(t, blogRuntime(), `{ user(id: "1") { posts { title } } }`, nil)

	require.Empty(t, res.Errors)
	require.Equal(t, `{"user":{"posts":[]}}`, marshalData(t, res))
}

func TestExecuteOperationSelection(t *testing.T) {
	doc := mustParseQuery(t, `query A { user(id: "1") { name } } query B { user(id: "2") { name } }`)
	exec := NewExecutor(blogRuntime(), newBlogSchema())

	res := exec.ExecuteRequest(context.Background(), doc, "B", nil)
	require.Empty(t, res.Errors)
	require.Equal(t, `{"user":{"name":"Jane Smith"}}`, marshalData(t, res))

	res = exec.ExecuteRequest(context.Background(), doc, "C", nil)
	require.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "operation not found", res.Errors[0].Message)
}

func TestExecuteRepeatedQueriesAreIdentical(t *testing.T) {
	rt := blogRuntime()
	first := execute(t, rt, `{ users { id name posts { title likes } } }`, nil)
	second := execute(t, rt, `{ users { id name posts { title likes } } }`, nil)

	require.Empty(t, first.Errors)
	require.Equal(t, marshalData(t, first), marshalData(t, second))
}
