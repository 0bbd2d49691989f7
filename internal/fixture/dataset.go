package fixture

// DefaultDataset returns the sample blog dataset served out of the box.
// User 3 deliberately references post 99, which does not exist.
func DefaultDataset() *Dataset {
	posts := []*Post{
		{
			ID:      "1",
			Title:   "Introduction to GraphQL",
			Content: "GraphQL is a query language for APIs that lets clients ask for exactly the fields they need.",
			Likes:   120,
		},
		{
			ID:      "2",
			Title:   "Optimizing API Performance",
			Content: "Caching, batching and careful schema design go a long way toward keeping an API fast under load.",
			Likes:   187,
		},
		{
			ID:      "3",
			Title:   "Understanding REST vs GraphQL",
			Content: "REST models resources behind fixed endpoints while GraphQL exposes a single flexible query surface.",
			Likes:   256,
		},
		{
			ID:      "4",
			Title:   "The Future of Mobile Development",
			Content: "Mobile clients on constrained networks benefit the most from transferring only the data they render.",
			Likes:   94,
		},
	}
	users := []*User{
		{
			ID:      "1",
			Name:    "John Doe",
			Email:   "john.doe@example.com",
			Phone:   "+1-555-0101",
			PostIDs: []string{"1", "3"},
		},
		{
			ID:      "2",
			Name:    "Jane Smith",
			Email:   "jane.smith@example.com",
			Phone:   "+1-555-0102",
			PostIDs: []string{"2", "4"},
		},
		{
			ID:      "3",
			Name:    "Alice Johnson",
			Email:   "alice.johnson@example.com",
			Phone:   "+1-555-0103",
			PostIDs: []string{"4", "99"},
		},
	}
	return NewDataset(users, posts)
}
