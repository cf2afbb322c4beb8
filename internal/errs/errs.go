package errs

import (
	"errors"
	"fmt"
	"strings"
)

type Code uint16

const (
	CodeUnknown Code = iota
	CodeMissingName
	CodeInvalidIdentifier
	CodeDuplicateRegistration
	CodeDuplicateContainerName
	CodeUnknownLifetime
	CodeUnknownVisibility
	CodeNotAFunction
	CodeInvalidConstructor
	CodeUnknownIdentifier
	CodeNotVisible
	CodeCircularDependency
	CodeFactoryFailed
	CodeTypeMismatch
	CodeDisposeFailed
	CodeValidationFailed
)

var codeNames = map[Code]string{
	CodeUnknown:                "UNKNOWN",
	CodeMissingName:            "MISSING_NAME",
	CodeInvalidIdentifier:      "INVALID_IDENTIFIER",
	CodeDuplicateRegistration:  "DUPLICATE_REGISTRATION",
	CodeDuplicateContainerName: "DUPLICATE_CONTAINER_NAME",
	CodeUnknownLifetime:        "UNKNOWN_LIFETIME",
	CodeUnknownVisibility:      "UNKNOWN_VISIBILITY",
	CodeNotAFunction:           "NOT_A_FUNCTION",
	CodeInvalidConstructor:     "INVALID_CONSTRUCTOR",
	CodeUnknownIdentifier:      "UNKNOWN_IDENTIFIER",
	CodeNotVisible:             "NOT_VISIBLE",
	CodeCircularDependency:     "CIRCULAR_DEPENDENCY",
	CodeFactoryFailed:          "FACTORY_FAILED",
	CodeTypeMismatch:           "TYPE_MISMATCH",
	CodeDisposeFailed:          "DISPOSE_FAILED",
	CodeValidationFailed:       "VALIDATION_FAILED",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the single error type raised by the engine. Message carries the
// human readable diagnostic; the remaining fields expose the same facts in
// structured form.
type Error struct {
	Code        Code
	Message     string
	Component   string
	Container   string
	Chain       []string
	Suggestions []string
	Cause       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Component != "" {
		b.WriteString(fmt.Sprintf(" component=%q:", e.Component))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

func (e *Error) WithContainer(container string) *Error {
	e.Container = container
	return e
}

func (e *Error) WithChain(chain []string) *Error {
	e.Chain = chain
	return e
}

func New(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err, or anything it wraps, is an *Error with code.
func HasCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

func MissingName() *Error {
	return New(CodeMissingName, "Must provide container name", nil)
}

func InvalidIdentifier(id string) *Error {
	return New(
		CodeInvalidIdentifier,
		fmt.Sprintf(
			"Cannot register '%s' - invalid ID. Allowed characters: 'a-z', 'A-Z', '0-9', '-' and '_'. "+
				"Must begin with a letter, and end with a letter or number",
			id,
		),
		nil,
	).WithComponent(id)
}

func DuplicateRegistration(id, existing string) *Error {
	return New(
		CodeDuplicateRegistration,
		fmt.Sprintf("Cannot register '%s' - already registered as a %s", id, existing),
		nil,
	).WithComponent(id)
}

func DuplicateContainerName(name string, path []string) *Error {
	return New(
		CodeDuplicateContainerName,
		fmt.Sprintf(
			"Cannot use container name '%s': parent container named '%s' already exists: %s",
			name, name, strings.Join(path, " -> "),
		),
		nil,
	).WithContainer(name).WithChain(path)
}

func UnknownLifetime(value string) *Error {
	return New(
		CodeUnknownLifetime,
		fmt.Sprintf("'%s' is not a valid lifetime. Valid keys: Transient, Registration", value),
		nil,
	)
}

func UnknownVisibility(value string) *Error {
	return New(
		CodeUnknownVisibility,
		fmt.Sprintf("'%s' is not a valid visibility. Valid keys: Private, Public", value),
		nil,
	)
}

func NotAFunction(id string) *Error {
	return New(
		CodeNotAFunction,
		fmt.Sprintf("Can't register '%s' as a factory - it is not a function", id),
		nil,
	).WithComponent(id)
}

func InvalidConstructor(id, reason string) *Error {
	return New(
		CodeInvalidConstructor,
		fmt.Sprintf("Can't register '%s' as a constructor - %s", id, reason),
		nil,
	).WithComponent(id)
}

func UnknownIdentifier(path, container string, searched, chain, suggestions []string) *Error {
	msg := fmt.Sprintf(
		"Nothing registered for '%s' in containers: '%s'. Trying to resolve: '%s'.",
		path, strings.Join(searched, " -> "), strings.Join(chain, " -> "),
	)

	switch len(suggestions) {
	case 0:
	case 1:
		msg += fmt.Sprintf(" Did you mean: %s?", suggestions[0])
	default:
		msg += fmt.Sprintf(" Did you mean one of: %s?", strings.Join(suggestions, ", "))
	}

	err := New(CodeUnknownIdentifier, msg, nil).WithComponent(path).WithContainer(container).WithChain(chain)
	err.Suggestions = suggestions
	return err
}

func MissingParentModule(path, container string) *Error {
	return New(
		CodeUnknownIdentifier,
		fmt.Sprintf("Could not resolve '%s' - parent module does not exist", path),
		nil,
	).WithComponent(path).WithContainer(container)
}

func NotAModule(path, segment string) *Error {
	return New(
		CodeUnknownIdentifier,
		fmt.Sprintf("Could not resolve '%s' - '%s' is not a submodule", path, segment),
		nil,
	).WithComponent(path)
}

func NotVisible(target, requester, container string) *Error {
	return New(
		CodeNotVisible,
		fmt.Sprintf("'%s' is not visible to '%s'", target, requester),
		nil,
	).WithComponent(target).WithContainer(container)
}

func CircularDependency(target, container string, chain []string) *Error {
	return New(
		CodeCircularDependency,
		fmt.Sprintf("Circular dependencies: '%s'", strings.Join(chain, " -> ")),
		nil,
	).WithComponent(target).WithContainer(container).WithChain(chain)
}

func FactoryFailed(path, container string, cause error) *Error {
	return New(
		CodeFactoryFailed,
		fmt.Sprintf("factory for '%s' in container '%s' returned error", path, container),
		cause,
	).WithComponent(path).WithContainer(container)
}

func TypeMismatch(path, want string, got any) *Error {
	return New(
		CodeTypeMismatch,
		fmt.Sprintf("'%s' resolved to %T, expected %s", path, got, want),
		nil,
	).WithComponent(path)
}

func DisposeFailed(path, container string, cause error) *Error {
	return New(
		CodeDisposeFailed,
		fmt.Sprintf("failed to dispose '%s' in container '%s'", path, container),
		cause,
	).WithComponent(path).WithContainer(container)
}

func ValidationFailed(container string, cause error) *Error {
	return New(
		CodeValidationFailed,
		fmt.Sprintf("container '%s' validation failed", container),
		cause,
	).WithContainer(container)
}
