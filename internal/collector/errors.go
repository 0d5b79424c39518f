package collector

import "fmt"

// InvalidConfigFormat mirrors the teacher's pattern of exported
// format-string error constants (errors.go in the teacher repository).
const InvalidConfigFormat = "invalid collector config: %s"

func errInvalidConfig(reason string) error {
	return &configError{reason}
}

type configError struct {
	reason string
}

func (e *configError) Error() string {
	return fmt.Sprintf(InvalidConfigFormat, e.reason)
}
