package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/placementhub/internal/pkg/placementstats"
)

// Validation rule patterns
var (
	// DriveLinkPattern accepts Google Drive and Google Docs share links only
	DriveLinkPattern = `^https://(drive\.google\.com|docs\.google\.com)/`

	// MobilePattern accepts 10 digit numbers with an optional +91 / 0 prefix
	MobilePattern = `^(\+91|0)?[6-9]\d{9}$`

	// ExamTimePattern is a 24h HH:MM clock time
	ExamTimePattern = `^([01]\d|2[0-3]):[0-5]\d$`

	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DriveLink *regexp.Regexp
	Mobile    *regexp.Regexp
	ExamTime  *regexp.Regexp
}{
	DriveLink: regexp.MustCompile(DriveLinkPattern),
	Mobile:    regexp.MustCompile(MobilePattern),
	ExamTime:  regexp.MustCompile(ExamTimePattern),
}

// Portal roles accepted by the portalrole tag.
var portalRoles = map[string]struct{}{
	"student": {},
	"faculty": {},
	"company": {},
}

// Register installs the custom struct tags used by request DTOs:
// academicyear, deptcode, drivelink, portalrole, mobile, examtime and password.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"academicyear": func(fl validator.FieldLevel) bool {
			return placementstats.ValidateAcademicYear(fl.Field().String()) == ""
		},
		"deptcode": func(fl validator.FieldLevel) bool {
			return placementstats.IsDepartmentCode(fl.Field().String())
		},
		"drivelink": func(fl validator.FieldLevel) bool {
			return IsDriveLink(fl.Field().String())
		},
		"portalrole": func(fl validator.FieldLevel) bool {
			_, ok := portalRoles[fl.Field().String()]
			return ok
		},
		"mobile": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Mobile.MatchString(fl.Field().String())
		},
		"examtime": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.ExamTime.MatchString(fl.Field().String())
		},
		"password": func(fl validator.FieldLevel) bool {
			return PasswordProblem(fl.Field().String()) == ""
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// UseJSONNames makes FieldError.Field report the JSON name of a field, so error details
// line up with the request body the client sent.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// IsDriveLink reports whether link points at Google Drive or Google Docs.
func IsDriveLink(link string) bool {
	return CompiledPatterns.DriveLink.MatchString(link)
}

// PasswordProblem describes why a password is too weak, or returns "" when it is acceptable.
func PasswordProblem(password string) string {
	if len(password) < PasswordMinLength {
		return "password must be at least 8 characters long"
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return "password must contain at least one letter"
	}
	if !hasDigit {
		return "password must contain at least one digit"
	}
	return ""
}

// Message turns a failed tag into a human-readable sentence.
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "academicyear":
		return e.Field() + " must look like 2024-2025"
	case "deptcode":
		return e.Field() + " must be a known department code"
	case "drivelink":
		return e.Field() + " must be a Google Drive or Google Docs link"
	case "portalrole":
		return e.Field() + " must be student, faculty or company"
	case "mobile":
		return e.Field() + " must be a valid mobile number"
	case "examtime":
		return e.Field() + " must be a HH:MM time"
	case "password":
		return e.Field() + " must be at least 8 characters with a letter and a digit"
	case "datetime":
		return e.Field() + " must be a date in YYYY-MM-DD format"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
