package chi

import (
	"net/http"
	"strconv"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
)

const (
	apiTitle   = "Books API"
	apiVersion = "1.0.0"
)

// NewOpenAPISpec describes the book routes as an OpenAPI 3.0 document,
// with schemas reflected from the wire types of this package.
func NewOpenAPISpec() (*openapi3.Spec, error) {
	spec := &openapi3.Spec{
		Openapi: "3.0.3",
		Info: openapi3.Info{
			Title:   apiTitle,
			Version: apiVersion,
		},
	}

	idParam, err := pathParam("id", int64(0))
	if err != nil {
		return nil, err
	}
	notFound, err := jsonResponse(msgNotFound, messageResponse{})
	if err != nil {
		return nil, err
	}
	badRequest, err := jsonResponse(msgMissingFields, messageResponse{})
	if err != nil {
		return nil, err
	}

	list, err := jsonResponse("List of books", []bookResponse{})
	if err != nil {
		return nil, err
	}
	found, err := jsonResponse("Book found", bookResponse{})
	if err != nil {
		return nil, err
	}
	added, err := jsonResponse(msgAdded, bookMessageResponse{})
	if err != nil {
		return nil, err
	}
	updated, err := jsonResponse(msgUpdated, bookMessageResponse{})
	if err != nil {
		return nil, err
	}
	createBody, err := jsonRequest(createBookRequest{})
	if err != nil {
		return nil, err
	}
	updateBody, err := jsonRequest(updateBookRequest{})
	if err != nil {
		return nil, err
	}

	ops := []struct {
		method  string
		path    string
		summary string
		op      openapi3.Operation
	}{
		{
			method:  http.MethodGet,
			path:    "/books",
			summary: "Get all books",
			op:      operation(nil, nil, map[int]openapi3.ResponseOrRef{http.StatusOK: list}),
		},
		{
			method:  http.MethodPost,
			path:    "/books",
			summary: "Add a new book",
			op: operation(createBody, nil, map[int]openapi3.ResponseOrRef{
				http.StatusCreated:    added,
				http.StatusBadRequest: badRequest,
			}),
		},
		{
			method:  http.MethodGet,
			path:    "/books/{id}",
			summary: "Get a book by ID",
			op: operation(nil, []openapi3.ParameterOrRef{idParam}, map[int]openapi3.ResponseOrRef{
				http.StatusOK:       found,
				http.StatusNotFound: notFound,
			}),
		},
		{
			method:  http.MethodPut,
			path:    "/books/{id}",
			summary: "Update a book by ID",
			op: operation(updateBody, []openapi3.ParameterOrRef{idParam}, map[int]openapi3.ResponseOrRef{
				http.StatusOK:       updated,
				http.StatusNotFound: notFound,
			}),
		},
		{
			method:  http.MethodDelete,
			path:    "/books/{id}",
			summary: "Delete a book by ID",
			op: operation(nil, []openapi3.ParameterOrRef{idParam}, map[int]openapi3.ResponseOrRef{
				http.StatusNoContent: {Response: &openapi3.Response{Description: "Book deleted successfully"}},
				http.StatusNotFound:  notFound,
			}),
		},
	}
	for _, o := range ops {
		o.op.WithSummary(o.summary)
		o.op.WithTags("books")
		if err := spec.AddOperation(o.method, o.path, o.op); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func operation(body *openapi3.RequestBodyOrRef, params []openapi3.ParameterOrRef, responses map[int]openapi3.ResponseOrRef) openapi3.Operation {
	byStatus := make(map[string]openapi3.ResponseOrRef, len(responses))
	for status, resp := range responses {
		byStatus[strconv.Itoa(status)] = resp
	}
	return openapi3.Operation{
		RequestBody: body,
		Parameters:  params,
		Responses: openapi3.Responses{
			MapOfResponseOrRefValues: byStatus,
		},
	}
}

func schemaOf(v interface{}) (*openapi3.SchemaOrRef, error) {
	var reflector jsonschema.Reflector

	jsonSchema, err := reflector.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	var schemaOrRef openapi3.SchemaOrRef
	schemaOrRef.FromJSONSchema(jsonSchema.ToSchemaOrBool())
	return &schemaOrRef, nil
}

func jsonContent(v interface{}) (map[string]openapi3.MediaType, error) {
	schema, err := schemaOf(v)
	if err != nil {
		return nil, err
	}
	return map[string]openapi3.MediaType{
		"application/json": {
			Schema: schema,
		},
	}, nil
}

func jsonResponse(description string, v interface{}) (openapi3.ResponseOrRef, error) {
	content, err := jsonContent(v)
	if err != nil {
		return openapi3.ResponseOrRef{}, err
	}
	return openapi3.ResponseOrRef{
		Response: &openapi3.Response{
			Description: description,
			Content:     content,
		},
	}, nil
}

func jsonRequest(v interface{}) (*openapi3.RequestBodyOrRef, error) {
	content, err := jsonContent(v)
	if err != nil {
		return nil, err
	}
	required := true
	return &openapi3.RequestBodyOrRef{
		RequestBody: &openapi3.RequestBody{
			Required: &required,
			Content:  content,
		},
	}, nil
}

func pathParam(name string, v interface{}) (openapi3.ParameterOrRef, error) {
	schema, err := schemaOf(v)
	if err != nil {
		return openapi3.ParameterOrRef{}, err
	}
	required := true
	return openapi3.ParameterOrRef{
		Parameter: &openapi3.Parameter{
			Name:     name,
			In:       openapi3.ParameterInPath,
			Required: &required,
			Schema:   schema,
		},
	}, nil
}
