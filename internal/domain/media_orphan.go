package domain

// MediaOrphan records a stored object whose owning post was deleted.
// The cleanup job removes the object and then the row.
type MediaOrphan struct {
	BaseModel
	Key string `gorm:"type:text;not null" json:"key"`
}

// TableName specifies the table name for MediaOrphan
func (MediaOrphan) TableName() string {
	return "media_orphans"
}
