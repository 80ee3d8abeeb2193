package complaint

import (
	"fmt"
	"strings"

	"samadhan/backend/internal/models"
)

// validateNew checks the fields of a complaint being filed. Errors are
// collected per field so the client gets the full picture in one response.
func validateNew(in NewComplaint) error {
	verr := &ValidationError{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.add("title", "Title is required")
	} else if len(title) > models.MaxTitleLen {
		verr.add("title", fmt.Sprintf("Title cannot exceed %d characters", models.MaxTitleLen))
	}

	if in.Description == "" {
		verr.add("description", "Description is required")
	} else if len(in.Description) > models.MaxDescriptionLen {
		verr.add("description", fmt.Sprintf("Description cannot exceed %d characters", models.MaxDescriptionLen))
	}

	if !models.ValidCategory(in.Category) {
		verr.add("category", "Category must be one of the specified options")
	}

	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		verr.add("priority", "Priority must be low, medium, or high")
	}

	if len(in.Images) > models.MaxImages {
		verr.add("images", fmt.Sprintf("At most %d images are allowed", models.MaxImages))
	}

	return verr.orNil()
}

// validateContentPatch checks the submitter-editable subset of a patch.
func validateContentPatch(p Patch) error {
	verr := &ValidationError{}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			verr.add("title", "Title is required")
		} else if len(title) > models.MaxTitleLen {
			verr.add("title", fmt.Sprintf("Title cannot exceed %d characters", models.MaxTitleLen))
		}
	}
	if p.Description != nil {
		if *p.Description == "" {
			verr.add("description", "Description is required")
		} else if len(*p.Description) > models.MaxDescriptionLen {
			verr.add("description", fmt.Sprintf("Description cannot exceed %d characters", models.MaxDescriptionLen))
		}
	}
	if p.Category != nil && !models.ValidCategory(*p.Category) {
		verr.add("category", "Category must be one of the specified options")
	}
	if p.Priority != nil && !models.ValidPriority(*p.Priority) {
		verr.add("priority", "Priority must be low, medium, or high")
	}

	return verr.orNil()
}

// validateStatusPatch checks the admin-editable subset of a patch.
func validateStatusPatch(p Patch) error {
	verr := &ValidationError{}

	if p.Status != nil && !models.ValidStatus(*p.Status) {
		verr.add("status", "Status must be one of the specified options")
	}

	return verr.orNil()
}

// validateFeedback checks a feedback submission.
func validateFeedback(rating *int, comment *string) error {
	verr := &ValidationError{}

	if rating != nil && (*rating < 1 || *rating > 5) {
		verr.add("rating", "Rating must be between 1 and 5")
	}
	if comment != nil && len(*comment) > models.MaxFeedbackCommentLen {
		verr.add("comment", fmt.Sprintf("Comment cannot exceed %d characters", models.MaxFeedbackCommentLen))
	}

	return verr.orNil()
}
