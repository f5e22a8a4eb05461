package model

// ContactStatusNew is the status every submission is stored with.
// Nothing in this service changes it afterwards.
const ContactStatusNew = "new"

// CreatedAtLayout formats created_at in UTC with a fixed microsecond width,
// so the strings sort in time order.
const CreatedAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// ContactDocument is a contact form submission as it is persisted in the
// document store. It carries no identifier; the store assigns one on insert.
type ContactDocument struct {
	Name      string `json:"name" bson:"name" dynamodbav:"name"`
	Email     string `json:"email" bson:"email" dynamodbav:"email"`
	Subject   string `json:"subject" bson:"subject" dynamodbav:"subject"`
	Message   string `json:"message" bson:"message" dynamodbav:"message"`
	CreatedAt string `json:"created_at" bson:"created_at" dynamodbav:"created_at"` // CreatedAtLayout
	Status    string `json:"status" bson:"status" dynamodbav:"status"`
}

// ContactSubmission is a stored document together with the identifier the
// store generated for it. It is returned from POST /api/contact only.
type ContactSubmission struct {
	ID string `json:"id"`
	ContactDocument
}

// ContactInput is the decoded body of POST /api/contact.
// Pointer fields distinguish an absent (or null) field from an empty string.
type ContactInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
}
