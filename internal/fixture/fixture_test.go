package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserByID(t *testing.T) {
	d := DefaultDataset()

	jane := d.UserByID("2")
	require.NotNil(t, jane)
	require.Equal(t, "Jane Smith", jane.Name)
	require.Equal(t, "jane.smith@example.com", jane.Email)

	require.Nil(t, d.UserByID("404"))
}

func TestPostByID(t *testing.T) {
	d := DefaultDataset()

	p := d.PostByID("3")
	require.NotNil(t, p)
	require.Equal(t, "Understanding REST vs GraphQL", p.Title)
	require.Equal(t, 256, p.Likes)

	require.Nil(t, d.PostByID("99"))
}

func TestLoadOrderPreserved(t *testing.T) {
	d := DefaultDataset()

	var userIDs []string
	for _, u := range d.Users() {
		userIDs = append(userIDs, u.ID)
	}
	require.Equal(t, []string{"1", "2", "3"}, userIDs)

	var postIDs []string
	for _, p := range d.Posts() {
		postIDs = append(postIDs, p.ID)
	}
	require.Equal(t, []string{"1", "2", "3", "4"}, postIDs)
}

func TestFirstUser(t *testing.T) {
	require.Equal(t, "John Doe", DefaultDataset().FirstUser().Name)
	require.Nil(t, NewDataset(nil, nil).FirstUser())
}

func TestPostsOfResolvesInOrder(t *testing.T) {
	d := DefaultDataset()
	posts := d.PostsOf(d.UserByID("2"))

	require.Len(t, posts, 2)
	require.Equal(t, "Optimizing API Performance", posts[0].Title)
	require.Equal(t, "The Future of Mobile Development", posts[1].Title)
}

func TestPostsOfDropsDanglingIDs(t *testing.T) {
	d := DefaultDataset()
	alice := d.UserByID("3")
	require.Equal(t, []string{"4", "99"}, alice.PostIDs)

	posts := d.PostsOf(alice)
	require.Len(t, posts, 1)
	require.Equal(t, "4", posts[0].ID)
}

func TestPostsOfEmptyIsEmptyNotNil(t *testing.T) {
	d := DefaultDataset()
	posts := d.PostsOf(&User{ID: "x"})
	require.NotNil(t, posts)
	require.Empty(t, posts)
}
