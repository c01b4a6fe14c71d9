package notify

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/repository"
)

type fakeLister struct {
	due []repository.DueTask
	err error

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeLister) ListDueTasks(dayStart, dayEnd time.Time) ([]repository.DueTask, error) {
	f.gotStart, f.gotEnd = dayStart, dayEnd
	return f.due, f.err
}

type sentMail struct {
	to       string
	username string
	titles   []string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) SendTaskReminder(to, username string, tasks []repository.DueTask) error {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	f.sent = append(f.sent, sentMail{to: to, username: username, titles: titles})
	return f.err
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestReminder_GroupsTasksByOwner(t *testing.T) {
	due := []repository.DueTask{
		{TaskID: 1, Title: "pay rent", Username: "alice", Email: "alice@x.com"},
		{TaskID: 2, Title: "call bank", Username: "alice", Email: "alice@x.com"},
		{TaskID: 3, Title: "ship parcel", Username: "bob", Email: "bob@x.com"},
	}
	lister := &fakeLister{due: due}
	sender := &fakeSender{}

	NewReminder(lister, sender, silentLogger()).Run()

	if !lister.gotEnd.Equal(lister.gotStart.Add(24 * time.Hour)) {
		t.Errorf("window = [%v, %v), want one day", lister.gotStart, lister.gotEnd)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	first, second := sender.sent[0], sender.sent[1]
	if first.to != "alice@x.com" || len(first.titles) != 2 {
		t.Errorf("first mail = %+v", first)
	}
	if second.to != "bob@x.com" || len(second.titles) != 1 || second.titles[0] != "ship parcel" {
		t.Errorf("second mail = %+v", second)
	}
}

func TestReminder_NothingDue(t *testing.T) {
	sender := &fakeSender{}
	NewReminder(&fakeLister{}, sender, silentLogger()).Run()
	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(sender.sent))
	}
}

func TestReminder_ErrorsAreNotFatal(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	sender := &fakeSender{}
	NewReminder(lister, sender, silentLogger()).Run()
	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails after store error", len(sender.sent))
	}

	lister = &fakeLister{due: []repository.DueTask{
		{TaskID: 1, Title: "a", Username: "alice", Email: "alice@x.com"},
		{TaskID: 2, Title: "b", Username: "bob", Email: "bob@x.com"},
	}}
	sender = &fakeSender{err: errors.New("smtp down")}
	// Run must keep going past per-owner send failures
	NewReminder(lister, sender, silentLogger()).Run()
	if len(sender.sent) != 2 {
		t.Errorf("attempted %d sends, want 2", len(sender.sent))
	}
}
