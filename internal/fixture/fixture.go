// Package fixture holds the fixed in-memory dataset the server resolves
// against. A Dataset is built once and never mutated afterwards, so lookups
// are safe for concurrent use without locking.
package fixture

// Post is a full blog post record. Every lookup returns the complete record
// regardless of which fields the caller ends up reading.
type Post struct {
	ID      string
	Title   string
	Content string
	Likes   int
}

// User is a full user record. PostIDs reference Post records by id in
// authored order.
type User struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	PostIDs []string
}

// Dataset indexes users and posts by id while preserving load order.
type Dataset struct {
	users     []*User
	posts     []*Post
	userIndex map[string]*User
	postIndex map[string]*Post
}

// NewDataset builds a Dataset from the given records. Load order of the
// slices is preserved by Users and Posts.
func NewDataset(users []*User, posts []*Post) *Dataset {
	d := &Dataset{
		users:     users,
		posts:     posts,
		userIndex: make(map[string]*User, len(users)),
		postIndex: make(map[string]*Post, len(posts)),
	}
	for _, u := range users {
		d.userIndex[u.ID] = u
	}
	for _, p := range posts {
		d.postIndex[p.ID] = p
	}
	return d
}

// UserByID returns the user with the given id, or nil when no user has it.
func (d *Dataset) UserByID(id string) *User {
	return d.userIndex[id]
}

// PostByID returns the post with the given id, or nil when no post has it.
func (d *Dataset) PostByID(id string) *Post {
	return d.postIndex[id]
}

// FirstUser returns the first user in load order, or nil for an empty dataset.
func (d *Dataset) FirstUser() *User {
	if len(d.users) == 0 {
		return nil
	}
	return d.users[0]
}

// Users returns all users in load order.
func (d *Dataset) Users() []*User {
	return d.users
}

// Posts returns all posts in load order.
func (d *Dataset) Posts() []*Post {
	return d.posts
}

// PostsOf resolves a user's PostIDs to full Post records, in PostIDs order.
// Ids that match no post are dropped without error, so the result may be
// shorter than PostIDs. The result is never nil.
func (d *Dataset) PostsOf(user *User) []*Post {
	posts := make([]*Post, 0, len(user.PostIDs))
	for _, id := range user.PostIDs {
		if p := d.postIndex[id]; p != nil {
			posts = append(posts, p)
		}
	}
	return posts
}
