// Package memrt implements executor.Runtime over an in-memory fixture
// dataset. Every resolution is a pure lookup against full records: a narrow
// field selection still materializes the whole Post or User behind it.
package memrt

import (
	"context"
	"fmt"

	"github.com/fetchlab/overgraph/internal/fixture"
	"github.com/fetchlab/overgraph/internal/schema"
)

// SDL is the entity schema served by the runtime, compiled at startup.
const SDL = `type Query {
  user(id: ID): User
  users: [User!]!
  post(id: ID!): Post
  posts: [Post!]!
}

type User {
  id: ID!
  name: String!
  email: String!
  phone: String!
  posts: [Post!]
}

type Post {
  id: ID!
  title: String!
  content: String!
  likes: Int!
}
`

// Runtime resolves fields against a fixed Dataset. It holds no mutable state
// and is safe for concurrent use.
type Runtime struct {
	data *fixture.Dataset
}

func NewRuntime(data *fixture.Dataset) *Runtime {
	return &Runtime{data: data}
}

// Schema compiles the entity SDL into the static schema model.
func Schema() (*schema.Schema, error) {
	return schema.BuildFromSDL(SDL)
}

// ResolveField implements executor.Runtime.
func (r *Runtime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	switch objectType {
	case "Query":
		return r.resolveQuery(field, args)
	case "User":
		if u, ok := source.(*fixture.User); ok {
			return r.resolveUser(field, u)
		}
		return nil, fmt.Errorf("User.%s: unexpected source %T", field, source)
	case "Post":
		if p, ok := source.(*fixture.Post); ok {
			return resolvePost(field, p)
		}
		return nil, fmt.Errorf("Post.%s: unexpected source %T", field, source)
	}
	return nil, fmt.Errorf("no resolver for type %s", objectType)
}

func (r *Runtime) resolveQuery(field string, args map[string]any) (any, error) {
	switch field {
	case "user":
		id, ok := args["id"].(string)
		if !ok || id == "" {
			// No id argument selects the first user in load order.
			if u := r.data.FirstUser(); u != nil {
				return u, nil
			}
			return nil, nil
		}
		if u := r.data.UserByID(id); u != nil {
			return u, nil
		}
		return nil, nil
	case "users":
		return r.data.Users(), nil
	case "post":
		id, _ := args["id"].(string)
		if p := r.data.PostByID(id); p != nil {
			return p, nil
		}
		return nil, nil
	case "posts":
		return r.data.Posts(), nil
	}
	return nil, fmt.Errorf("no resolver for field Query.%s", field)
}

func (r *Runtime) resolveUser(field string, u *fixture.User) (any, error) {
	switch field {
	case "id":
		return u.ID, nil
	case "name":
		return u.Name, nil
	case "email":
		return u.Email, nil
	case "phone":
		return u.Phone, nil
	case "posts":
		return r.data.PostsOf(u), nil
	}
	return nil, fmt.Errorf("no resolver for field User.%s", field)
}

func resolvePost(field string, p *fixture.Post) (any, error) {
	switch field {
	case "id":
		return p.ID, nil
	case "title":
		return p.Title, nil
	case "content":
		return p.Content, nil
	case "likes":
		return p.Likes, nil
	}
	return nil, fmt.Errorf("no resolver for field Post.%s", field)
}

// SerializeLeafValue implements executor.Runtime for the builtin scalars the
// schema uses.
func (r *Runtime) SerializeLeafValue(ctx context.Context, typeName string, value any) (any, error) {
	switch typeName {
	case "String", "ID":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", value), nil
	case "Int":
		switch v := value.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Int", value)
	}
	return value, nil
}
