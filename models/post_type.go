package models

// PostType discriminates which content kind an engagement record (comment,
// like) references. Engagement tables carry the pair (PostID, PostType)
// instead of a plain foreign key; the database layer resolves the pair to the
// owning record per kind.
type PostType string

const (
	PostTypeBlog    PostType = "blog"
	PostTypeProject PostType = "project"
)

// Valid reports whether t is one of the known content kinds.
func (t PostType) Valid() bool {
	return t == PostTypeBlog || t == PostTypeProject
}

func (t PostType) String() string {
	return string(t)
}
