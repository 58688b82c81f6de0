package assemble

import (
	"github.com/inferspec/inferspec/internal/severity"
	"github.com/inferspec/inferspec/internal/stringutil"
	"github.com/inferspec/inferspec/spec"
)

const validationErrorSchema = "ValidationError"

// buildResponses attaches the success response, the validation-error
// response for validating operations, and declared response links.
func (a *run) buildResponses(op *spec.Operation, facts OperationFacts, hasValidation bool) {
	path := facts.Route.PathTemplate

	status := facts.Status
	if status == "" {
		if facts.Response != nil {
			status = "200"
		} else {
			status = "204"
		}
	}
	if !stringutil.IsValidStatusKey(status) {
		a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
			"invalid response status key %q; using 200", status)
		status = "200"
	}

	if facts.Response != nil {
		result := a.analyzeShape(*facts.Response)
		op.Responses[status] = &spec.Response{
			Description: "Successful response",
			Content: map[string]*spec.MediaType{
				"application/json": {Schema: a.schemaFromShape(result)},
			},
		}
	} else {
		op.Responses[status] = &spec.Response{Description: "No content"}
	}

	if hasValidation {
		a.registerValidationErrorSchema()
		op.Responses["422"] = &spec.Response{
			Description: "Validation error",
			Content: map[string]*spec.MediaType{
				"application/json": {
					Schema: &spec.Schema{Ref: "#/components/schemas/" + validationErrorSchema},
				},
			},
		}
	}

	for _, link := range facts.Links {
		a.attachLink(op, link, status, path)
	}
}

// attachLink validates and attaches one declared link. A link must target
// exactly one of an operation id or an operation reference; malformed links
// are dropped with a warning rather than emitted invalid.
func (a *run) attachLink(op *spec.Operation, link LinkFact, successStatus, path string) {
	if link.Name == "" {
		a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path, "link needs a name")
		return
	}
	if (link.OperationID == "") == (link.OperationRef == "") {
		a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
			"link %q must set exactly one of operationId and operationRef", link.Name)
		return
	}

	status := link.Status
	if status == "" {
		status = successStatus
	}
	resp := op.Responses[status]
	if resp == nil {
		resp = &spec.Response{Description: "Response"}
		op.Responses[status] = resp
	}
	if resp.Links == nil {
		resp.Links = make(map[string]*spec.Link)
	}
	resp.Links[link.Name] = &spec.Link{
		OperationID:  link.OperationID,
		OperationRef: link.OperationRef,
		Description:  link.Description,
		Parameters:   link.Parameters,
	}
}

// registerValidationErrorSchema registers the shared 422 body component.
func (a *run) registerValidationErrorSchema() {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := a.doc.EnsureComponents()
	if c.Schemas[validationErrorSchema] != nil {
		return
	}
	a.doc.AddSchema(validationErrorSchema, &spec.Schema{
		Type: "object",
		Properties: map[string]*spec.Schema{
			"message": {Type: "string"},
			"errors": {
				Type: "object",
				AdditionalProperties: &spec.Schema{
					Type:  "array",
					Items: &spec.Schema{Type: "string"},
				},
			},
		},
		Required: []string{"errors", "message"},
	})
}
