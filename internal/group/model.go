package group

// Group is a topic posts may be filed under. Slug is the public key.
type Group struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (g Group) String() string { return g.Title }
