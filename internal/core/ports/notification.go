package ports

import "context"

// MailJob is one fire-and-forget email hand-off. Jobs carry plain strings
// only; rendering happens before enqueue so workers never touch the store.
type MailJob struct {
	Recipient string
	Subject   string
	Body      string
}

// Mailer submits a single message for delivery.
type Mailer interface {
	Send(ctx context.Context, job MailJob) error
}

// NotificationService shares a recipe with a recipient by email.
// The returned error covers only the synchronous part (recipe lookup,
// authorisation, enqueue); delivery itself is never confirmed to the caller.
type NotificationService interface {
	Share(ctx context.Context, caller Caller, recipeID, recipient string) error
}
