// Package errors provides structured error handling for the loadout API.
//
// Errors carry a Code, a message, an optional wrapped cause, and optional
// metadata. Codes map onto HTTP status codes via Code.HTTPStatus, which the
// handler layer uses to build responses.
//
// Creating errors:
//
//	err := errors.NotFound("equipment not found")
//	err := errors.InvalidArgumentf("unknown attribute: %s", attr)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load equipment")
//	}
//
// Validation errors accumulate per-field messages:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Layer guidelines: repositories return NotFound/AlreadyExists with IDs in
// metadata; orchestrators return InvalidArgument for bad input and
// FailedPrecondition for eligibility violations; handlers translate codes to
// HTTP statuses and never expose internal causes.
package errors
