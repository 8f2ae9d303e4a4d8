package purge

import (
	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

// Collection names of the user data graph.
const (
	UsersCollection       = "users"
	LanguagesCollection   = "languages"
	LevelBucketCollection = "assessmentsByLevel"
	AssessmentsCollection = "assessments"
	BackReferenceField    = "userId"
)

// UserSubcollections is every subcollection a user document may own, in
// deletion order. languages is expanded into its nested level buckets.
var UserSubcollections = []string{
	"profile",
	"stats",
	"settings",
	LanguagesCollection,
	"achievements",
	"challenges",
	"streaks",
	"sessions",
	"history",
	"wordAssessments",
	"mistakes",
	"savedWords",
	"notifications",
}

// ProgressCollections are drained by a progress reset. languages is handled
// separately: its documents are reset, not deleted.
var ProgressCollections = []string{
	"achievements",
	"challenges",
	"streaks",
	"sessions",
	"history",
	"wordAssessments",
	"mistakes",
}

// ContentReferenceCollections hold flat per-user records that can point at
// catalog items, next to the nested assessments.
var ContentReferenceCollections = []string{
	"wordAssessments",
	"history",
	"mistakes",
}

// BackReferenceCollections are root collections whose documents name a
// user in BackReferenceField.
var BackReferenceCollections = []string{
	"profanity_records",
	"reports",
}

// SingletonCollections are root collections keyed by user id.
var SingletonCollections = []string{
	"feedback",
	"leaderboard",
}

func UserPath(uid string) string {
	return docstore.Join(UsersCollection, uid)
}

func UserCollectionPath(uid, name string) string {
	return docstore.Join(UsersCollection, uid, name)
}

func LanguagePath(uid, languageID string) string {
	return docstore.Join(UsersCollection, uid, LanguagesCollection, languageID)
}

func LevelBucketPath(uid, languageID string, level model.Level) string {
	return docstore.Join(LanguagePath(uid, languageID), LevelBucketCollection, string(level))
}

func AssessmentsPath(uid, languageID string, level model.Level) string {
	return docstore.Join(LevelBucketPath(uid, languageID, level), AssessmentsCollection)
}

// CatalogPath is the collection of one content type under a language level.
func CatalogPath(languageID string, level model.Level, typ model.ContentType) string {
	return docstore.Join("languages", languageID, "levels", string(level), string(typ))
}
