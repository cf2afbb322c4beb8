package scope

import (
	"strconv"
	"strings"

	"github.com/danpasecinic/spool/internal/errs"
)

// Lifetime controls how long a factory's product is cached.
type Lifetime int

const (
	Transient Lifetime = iota
	Registration
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Registration:
		return "Registration"
	default:
		return "Lifetime(" + strconv.Itoa(int(l)) + ")"
	}
}

func (l Lifetime) Valid() bool {
	return l == Transient || l == Registration
}

func (l Lifetime) Validate() error {
	if !l.Valid() {
		return errs.UnknownLifetime(l.String())
	}
	return nil
}

func (l Lifetime) MarshalText() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transient":
		return Transient, nil
	case "registration":
		return Registration, nil
	default:
		return Transient, errs.UnknownLifetime(s)
	}
}

// Visibility controls whether a registration can be seen from outside its
// own module.
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "Private"
	case Public:
		return "Public"
	default:
		return "Visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

func (v Visibility) Valid() bool {
	return v == Private || v == Public
}

func (v Visibility) Validate() error {
	if !v.Valid() {
		return errs.UnknownVisibility(v.String())
	}
	return nil
}

func (v Visibility) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	parsed, err := ParseVisibility(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return Private, nil
	case "public":
		return Public, nil
	default:
		return Private, errs.UnknownVisibility(s)
	}
}
