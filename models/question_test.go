package models

import "testing"

func TestQuestionTagsRoundTrip(t *testing.T) {
	var q Question
	q.SetTags([]string{"go", "gin", "gorm"})

	tags := q.Tags()
	if len(tags) != 3 || tags[0] != "go" || tags[1] != "gin" || tags[2] != "gorm" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestQuestionTagsEmptyAndCorrupt(t *testing.T) {
	var q Question
	if q.Tags() != nil {
		t.Errorf("empty column yields %v, want nil", q.Tags())
	}

	q.TagNames = "{not json"
	if q.Tags() != nil {
		t.Errorf("corrupt column yields %v, want nil", q.Tags())
	}
}

func TestUserIsAdmin(t *testing.T) {
	member := User{Role: RoleUser}
	if member.IsAdmin() {
		t.Error("USER reported as admin")
	}
	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("ADMIN not reported as admin")
	}
}
