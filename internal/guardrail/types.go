package guardrail

// Entity identifies a kind of personally identifying data.
type Entity string

const (
	EntityEmailAddress Entity = "EMAIL_ADDRESS"
	EntityPhoneNumber  Entity = "PHONE_NUMBER"
	EntityCreditCard   Entity = "CREDIT_CARD"
	EntityUSSSN        Entity = "US_SSN"
	EntityIBANCode     Entity = "IBAN_CODE"
	EntityPerson       Entity = "PERSON"
)

// detection is a located PII span inside the analyzed text.
type detection struct {
	Entity Entity
	Start  int
	End    int
}

// TopicVerdict is the outcome of topic restriction checking.
type TopicVerdict struct {
	Allowed bool
	Topic   string
	Reason  string
}
