package domain

// ownerTag is set once at construction. Nothing in the package mutates it
// afterwards, so catalog updates can never reassign ownership.
type ownerTag struct {
	subject SubjectIdentity
	set     bool
}

func (o ownerTag) get() *SubjectIdentity {
	if !o.set {
		return nil
	}
	subject := o.subject
	return &subject
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilInts(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}
