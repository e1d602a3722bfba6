package basecamp

import (
	"time"
)

// Dock item names used by the Basecamp API to identify project tools.
const (
	DockTodoSet      = "todoset"
	DockMessageBoard = "message_board"
	DockChat         = "chat"
	DockCardTable    = "kanban_board"
)

// Project represents a Basecamp project.
type Project struct {
	ID          int64      `json:"id"`
	Status      string     `json:"status"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Purpose     string     `json:"purpose"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AppURL      string     `json:"app_url"`
	Dock        []DockItem `json:"dock"`
}

// DockItem is one tool pinned to a project (message board, to-do set, chat,
// card table, ...). Tool lookups go through the dock because the per-project
// tool IDs differ from the project ID.
type DockItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	AppURL  string `json:"app_url"`
}

// TodoList represents a to-do list inside a project's to-do set.
type TodoList struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Completed      bool      `json:"completed"`
	CompletedRatio string    `json:"completed_ratio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	AppURL         string    `json:"app_url"`
}

// Todo represents a single to-do.
type Todo struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	DueOn       string    `json:"due_on"` // date only (YYYY-MM-DD), may be empty
	StartsOn    string    `json:"starts_on"`
	Assignees   []Person  `json:"assignees"`
	Creator     Person    `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AppURL      string    `json:"app_url"`
}

// TodoInput is the payload for creating a to-do.
type TodoInput struct {
	Content     string  `json:"content"`
	Description string  `json:"description,omitempty"`
	DueOn       string  `json:"due_on,omitempty"`
	AssigneeIDs []int64 `json:"assignee_ids,omitempty"`
}

// Message represents a message-board post.
type Message struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Creator   Person    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AppURL    string    `json:"app_url"`
}

// MessageInput is the payload for posting a message. Status "active"
// publishes immediately; "drafted" keeps it as a draft.
type MessageInput struct {
	Subject string `json:"subject"`
	Content string `json:"content,omitempty"`
	Status  string `json:"status"`
}

// Campfire represents a project chat room.
type Campfire struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LinesURL  string    `json:"lines_url"`
	AppURL    string    `json:"app_url"`
	Bucket    Bucket    `json:"bucket"`
}

// CampfireLine is a single chat message.
type CampfireLine struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Creator   Person    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
}

// CardTable represents a project's card table (kanban board).
type CardTable struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	AppURL    string       `json:"app_url"`
	Lists     []CardColumn `json:"lists"`
}

// CardColumn is one column of a card table.
type CardColumn struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Color      string `json:"color"`
	CardsCount int    `json:"cards_count"`
	CardsURL   string `json:"cards_url"`
	AppURL     string `json:"app_url"`
}

// Card represents a card on a card table.
type Card struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	DueOn       string    `json:"due_on"`
	Completed   bool      `json:"completed"`
	CommentsURL string    `json:"comments_url"`
	Creator     Person    `json:"creator"`
	Assignees   []Person  `json:"assignees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AppURL      string    `json:"app_url"`
}

// CardInput is the payload for creating a card.
type CardInput struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	DueOn   string `json:"due_on,omitempty"`
}

// Person represents a Basecamp user.
type Person struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"email_address"`
	Title        string `json:"title"`
	Admin        bool   `json:"admin"`
	Owner        bool   `json:"owner"`
	AvatarURL    string `json:"avatar_url"`
	Company      struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"company"`
}

// Bucket identifies the project a recording belongs to.
type Bucket struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Recording is the generic shape Basecamp uses for most content types
// (todos, messages, documents, uploads, ...). Search results are recordings.
type Recording struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AppURL    string    `json:"app_url"`
	Bucket    Bucket    `json:"bucket"`
	Creator   Person    `json:"creator"`
	Parent    *struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Type   string `json:"type"`
		AppURL string `json:"app_url"`
	} `json:"parent,omitempty"`
}
