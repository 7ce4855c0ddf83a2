package snapshot

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a document before it is converted. It returns every
// problem found. Dangling manager references are allowed.
func Validate(doc *Document) []error {
	var errs []error

	errs = append(errs, validateStruct(doc)...)
	errs = append(errs, validateVerticals(doc.Verticals)...)
	errs = append(errs, validateNodes(doc.Nodes, verticalIDs(doc.Verticals))...)
	errs = append(errs, validateSettings(doc.Settings)...)

	return errs
}

func validateStruct(doc *Document) []error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Document.")
		switch fe.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s is required", field))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: invalid value %q", field, fmt.Sprint(fe.Value())))
		default:
			errs = append(errs, fmt.Errorf("%s: must be %s %s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return errs
}

func verticalIDs(vs []Vertical) map[string]bool {
	ids := make(map[string]bool, len(vs))
	for _, v := range vs {
		ids[v.ID] = true
	}
	return ids
}

func validateVerticals(vs []Vertical) []error {
	var errs []error
	seen := make(map[string]bool, len(vs))
	for i, v := range vs {
		if v.ID == "" {
			continue
		}
		if seen[v.ID] {
			errs = append(errs, fmt.Errorf("verticals[%d].id: duplicate id %q", i, v.ID))
		}
		seen[v.ID] = true
	}
	return errs
}

func validateNodes(nodes []Node, verticals map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool, len(nodes))

	for i, n := range nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)

		if n.ID != "" {
			if seen[n.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, n.ID))
			}
			seen[n.ID] = true
		}
		if id, ok := n.ManagerID.Ref.ManagerID(); ok && id == n.ID {
			errs = append(errs, fmt.Errorf("%s.managerId: node %q cannot manage itself", prefix, n.ID))
		}
		if n.VerticalID != "" && !verticals[n.VerticalID] {
			errs = append(errs, fmt.Errorf("%s.verticalId: vertical %q not found", prefix, n.VerticalID))
		}
		if n.JoiningDate != "" {
			if _, err := time.Parse(dateLayout, n.JoiningDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.joiningDate: invalid date format %q (expected YYYY-MM-DD)", prefix, n.JoiningDate))
			}
		}
	}

	return errs
}

// validateSettings checks the taxonomy that results from merging the
// document's settings over the defaults.
func validateSettings(s *Settings) []error {
	if s == nil {
		return nil
	}
	merged := domain.ApplySettingsPatch(domain.DefaultSettings(), s.patch())
	if err := merged.Validate(); err != nil {
		return []error{fmt.Errorf("settings: %w", err)}
	}
	return nil
}
