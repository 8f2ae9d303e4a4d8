package model

// Failure names one collection or unit that could not be processed.
type Failure struct {
	Scope string `json:"scope"`
	Error string `json:"error"`
}

type DeleteAccountResult struct {
	FirestoreDeleted bool      `json:"firestoreDeleted"`
	AuthDeleted      bool      `json:"authDeleted"`
	DeletedDocuments int       `json:"deletedDocuments"`
	Success          bool      `json:"success"`
	Failures         []Failure `json:"failures,omitempty"`
}

type DeleteUserResult struct {
	DeleteAccountResult
	ResolvedID string `json:"resolvedId"`
}

type ResetProgressResult struct {
	DeletedDocuments   int       `json:"deletedDocuments"`
	DeletedCollections int       `json:"deletedCollections"`
	Success            bool      `json:"success"`
	Failures           []Failure `json:"failures,omitempty"`
}

type CascadeDeleteResult struct {
	DeletedAssessments int       `json:"deletedAssessments"`
	UsersAffected      int       `json:"usersAffected"`
	Success            bool      `json:"success"`
	Failures           []Failure `json:"failures,omitempty"`
}

type OrphanCleanupResult struct {
	Scanned       int       `json:"scanned"`
	Deleted       int       `json:"deleted"`
	UsersAffected int       `json:"usersAffected"`
	SkippedLevels []string  `json:"skippedLevels,omitempty"`
	Success       bool      `json:"success"`
	Failures      []Failure `json:"failures,omitempty"`
}

type DeleteContentItemResult struct {
	ItemDeleted bool `json:"itemDeleted"`
	CascadeDeleteResult
}

type UserStatusResult struct {
	UserID      string     `json:"userId"`
	Status      UserStatus `json:"status"`
	Repaired    bool       `json:"repaired"`
	AuthUpdated bool       `json:"authUpdated"`
}

type UserPage struct {
	Users      []User `json:"users"`
	NextCursor string `json:"nextCursor,omitempty"`
}

type CollectionInfo struct {
	Name      string `json:"name"`
	Documents int64  `json:"documents"`
}

type Stats struct {
	Users     int64 `json:"users"`
	Badges    int64 `json:"badges"`
	Feedback  int64 `json:"feedback"`
	Languages int64 `json:"languages"`
}

type FeedbackPage struct {
	Entries    []FeedbackEntry `json:"entries"`
	NextCursor string          `json:"nextCursor,omitempty"`
}
