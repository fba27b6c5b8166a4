package store

import (
	"database/sql"
	"time"
)

type Profile struct {
	ID           string
	Email        string
	FullName     string
	AvatarURL    string
	Role         string
	Bio          string
	Website      string
	PasswordHash string
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Post struct {
	ID              int64
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	FeaturedImage   string
	AuthorID        string
	CategoryID      sql.NullInt64
	Status          string
	PublishedAt     sql.NullTime
	MetaTitle       string
	MetaDescription string
	ReadingTime     int64
	ViewCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Tag struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

type Page struct {
	ID              int64
	Title           string
	Slug            string
	Content         string
	Template        string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Banner struct {
	ID           int64
	Title        string
	Content      string
	ImageURL     string
	CtaText      string
	CtaLink      string
	Position     string
	IsActive     bool
	DisplayOrder int64
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MenuItem struct {
	ID           int64
	Label        string
	URL          string
	ParentID     sql.NullInt64
	DisplayOrder int64
	IsActive     bool
	OpenInNewTab bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Collection struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	Category     string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CollectionItem struct {
	ID           int64
	CollectionID int64
	Title        string
	Description  string
	ImageURL     string
	Price        sql.NullFloat64
	IsAvailable  bool
	DisplayOrder int64
	CreatedAt    time.Time
}

type Poster struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	Link         string
	Category     string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subscriber struct {
	ID        int64
	Email     string
	Name      string
	Token     string
	CreatedAt time.Time
}

type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    string
	IP        string
	URL       string
	Metadata  string
	CreatedAt time.Time
}

type ConfigEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
