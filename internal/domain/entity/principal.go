package entity

// PrincipalKind distinguishes the two identity systems that can hold a session.
type PrincipalKind string

const (
	PrincipalStaff  PrincipalKind = "staff"
	PrincipalDoctor PrincipalKind = "doctor"
)

func (k PrincipalKind) IsValid() bool {
	return k == PrincipalStaff || k == PrincipalDoctor
}

// Principal is the authenticated caller attached to a session, either a
// back-office staff account or a doctor using self-service login.
type Principal struct {
	Kind PrincipalKind `json:"kind"`
	ID   int64         `json:"id"`
	Name string        `json:"name"`
}

func (p Principal) IsDoctor() bool {
	return p.Kind == PrincipalDoctor
}

func (p Principal) IsStaff() bool {
	return p.Kind == PrincipalStaff
}
