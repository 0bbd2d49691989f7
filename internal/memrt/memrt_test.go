package memrt

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fetchlab/overgraph/internal/executor"
	"github.com/fetchlab/overgraph/internal/fixture"
	"github.com/fetchlab/overgraph/internal/language"
	"github.com/stretchr/testify/require"
)

func query(t *testing.T, q string) *executor.ExecutionResult {
	t.Helper()
	sch, err := Schema()
	require.NoError(t, err)
	doc, err := language.ParseQuery(q)
	require.NoError(t, err)
	exec := executor.NewExecutor(NewRuntime(fixture.DefaultDataset()), sch)
	return exec.ExecuteRequest(context.Background(), doc, "", nil)
}

func dataJSON(t *testing.T, res *executor.ExecutionResult) string {
	t.Helper()
	require.Empty(t, res.Errors)
	b, err := json.Marshal(res.Data)
	require.NoError(t, err)
	return string(b)
}

func TestSchemaCompiles(t *testing.T) {
	sch, err := Schema()
	require.NoError(t, err)
	require.Equal(t, "Query", sch.GetQueryType().Name)
	require.NotNil(t, sch.Types["User"])
	require.NotNil(t, sch.Types["Post"])
}

func TestQueryPostByID(t *testing.T) {
	res := query(t, `{ post(id: "3") { title likes } }`)
	require.Equal(t,
		`{"post":{"title":"Understanding REST vs GraphQL","likes":256}}`,
		dataJSON(t, res))
}

func TestQueryUserWithPosts(t *testing.T) {
	res := query(t, `{ user(id: "2") { name posts { title } } }`)
	require.Equal(t,
		`{"user":{"name":"Jane Smith","posts":[{"title":"Optimizing API Performance"},{"title":"The Future of Mobile Development"}]}}`,
		dataJSON(t, res))
}

func TestQueryUserWithoutIDDefaultsToFirst(t *testing.T) {
	res := query(t, `{ user { id name } }`)
	require.Equal(t, `{"user":{"id":"1","name":"John Doe"}}`, dataJSON(t, res))
}

func TestQueryUnmatchedIDsResolveToNull(t *testing.T) {
	res := query(t, `{ user(id: "404") { name } }`)
	require.Equal(t, `{"user":null}`, dataJSON(t, res))

	res = query(t, `{ post(id: "99") { title } }`)
	require.Equal(t, `{"post":null}`, dataJSON(t, res))
}

func TestQueryUsersAndPostsListAll(t *testing.T) {
	res := query(t, `{ users { id } posts { id } }`)
	require.Equal(t,
		`{"users":[{"id":"1"},{"id":"2"},{"id":"3"}],"posts":[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"}]}`,
		dataJSON(t, res))
}

func TestQueryDanglingPostRefIsDropped(t *testing.T) {
	res := query(t, `{ user(id: "3") { posts { id } } }`)
	require.Equal(t, `{"user":{"posts":[{"id":"4"}]}}`, dataJSON(t, res))
}

// A narrow selection still pulls the complete record out of the store. The
// resolver returns the full Post; the executor projects it down afterwards.
func TestResolutionOverFetchesFullRecords(t *testing.T) {
	rt := NewRuntime(fixture.DefaultDataset())
	v, err := rt.ResolveField(context.Background(), "Query", "post", nil, map[string]any{"id": "3"})
	require.NoError(t, err)

	p, ok := v.(*fixture.Post)
	require.True(t, ok)
	require.Equal(t, "Understanding REST vs GraphQL", p.Title)
	require.NotEmpty(t, p.Content, "full record includes fields nobody asked for")
	require.Equal(t, 256, p.Likes)

	v, err = rt.ResolveField(context.Background(), "User", "posts", fixture.DefaultDataset().UserByID("1"), nil)
	require.NoError(t, err)
	posts, ok := v.([]*fixture.Post)
	require.True(t, ok)
	require.Len(t, posts, 2)
	require.NotEmpty(t, posts[0].Content)
}

func TestResolutionIsIdempotent(t *testing.T) {
	q := `{ users { name email posts { title likes } } }`
	first := dataJSON(t, query(t, q))
	second := dataJSON(t, query(t, q))
	require.Equal(t, first, second)
}

func TestSerializeLeafValue(t *testing.T) {
	rt := NewRuntime(fixture.DefaultDataset())
	ctx := context.Background()

	s, err := rt.SerializeLeafValue(ctx, "String", "x")
	require.NoError(t, err)
	require.Equal(t, "x", s)

	id, err := rt.SerializeLeafValue(ctx, "ID", 7)
	require.NoError(t, err)
	require.Equal(t, "7", id)

	n, err := rt.SerializeLeafValue(ctx, "Int", 256)
	require.NoError(t, err)
	require.Equal(t, 256, n)

	_, err = rt.SerializeLeafValue(ctx, "Int", "not a number")
	require.Error(t, err)
}
