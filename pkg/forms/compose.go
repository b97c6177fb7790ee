package forms

import (
	"context"
	"sync"
)

// Compose combines validators into one. Nil entries are dropped; when
// nothing remains the result is nil. The composed validator runs every
// validator against the control and merges their error maps left-to-right,
// a later validator's keys overwriting an earlier one's. When no validator
// produces an error the composed result is nil, never an empty map.
func Compose(validators ...Validator) Validator {
	present := make([]Validator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return func(c Control) ValidationErrors {
		results := make([]ValidationErrors, len(present))
		for i, v := range present {
			results[i] = v(c)
		}
		return mergeErrors(results)
	}
}

// ComposeAsync combines async validators into one. All composed validators
// run concurrently against the control; every one settles before the
// results merge with Compose's left-to-right overwrite rule. An individual
// validator's failure contributes its failure translation instead of
// aborting the rest.
func ComposeAsync(validators ...AsyncValidator) AsyncValidator {
	present := make([]AsyncValidator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return func(ctx context.Context, c Control) (ValidationErrors, error) {
		results := make([]ValidationErrors, len(present))
		var wg sync.WaitGroup
		for i, v := range present {
			wg.Add(1)
			go func(i int, v AsyncValidator) {
				defer wg.Done()
				errs, err := v(ctx, c)
				if err != nil {
					errs = asyncFailureErrors(err)
				}
				results[i] = errs
			}(i, v)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return mergeErrors(results), nil
	}
}

func mergeErrors(results []ValidationErrors) ValidationErrors {
	var merged ValidationErrors
	for _, errs := range results {
		if errs == nil {
			continue
		}
		if merged == nil {
			merged = make(ValidationErrors, len(errs))
		}
		for code, value := range errs {
			merged[code] = value
		}
	}
	return merged
}
