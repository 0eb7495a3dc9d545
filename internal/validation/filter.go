package validation

import (
	"errors"

	"github.com/jonathan/resume-normalizer/internal/schemas"
	"github.com/jonathan/resume-normalizer/internal/types"
)

// FilterValid returns the records that satisfy the contract, in their
// original order, plus a rejection for every record dropped. Passing records
// are shallow copies with absent or null list fields set to an empty list;
// the input is never modified.
func FilterValid(records []any, contract Contract) ([]map[string]any, []types.Rejection) {
	valid := make([]map[string]any, 0, len(records))
	var rejections []types.Rejection

	schema, err := contract.Compile()
	if err != nil {
		// Contracts are static; a compile failure rejects every record.
		for i := range records {
			rejections = append(rejections, types.Rejection{
				Section: contract.Section, Index: i, Code: types.ReasonWrongShape, Reason: err.Error(),
			})
		}
		return valid, rejections
	}

	lists := contract.listFields()
	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			rejections = append(rejections, types.Rejection{
				Section: contract.Section, Index: i, Code: types.ReasonWrongShape, Reason: "record is not an object",
			})
			continue
		}

		if err := schema.ValidateValue(obj); err != nil {
			rejections = append(rejections, rejectionFor(contract.Section, i, err))
			continue
		}

		out := make(map[string]any, len(obj)+len(lists))
		for k, v := range obj {
			out[k] = v
		}
		for _, name := range lists {
			if out[name] == nil {
				out[name] = []any{}
			}
		}
		valid = append(valid, out)
	}

	return valid, rejections
}

func rejectionFor(section string, index int, err error) types.Rejection {
	rejection := types.Rejection{Section: section, Index: index, Code: types.ReasonWrongType, Reason: err.Error()}

	var validationErr *schemas.ValidationError
	if !errors.As(err, &validationErr) || len(validationErr.Errors) == 0 {
		return rejection
	}

	rejection.Reason = validationErr.Summary()
	if validationErr.Errors[0].Type == "required" {
		rejection.Code = types.ReasonMissingField
	}
	return rejection
}
