package moderation

import (
	"fmt"

	"github.com/feedbackhq/feedback-backend/types"
	"github.com/graphql-go/graphql"
)

var feedbackInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FeedbackInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":             &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"feedbackType":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"service":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"message":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"rating":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"attachScreenshot": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		"agreeToTerms":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var approvalResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ApprovalResponse",
	Fields: graphql.Fields{
		"approved": &graphql.Field{Type: graphql.Boolean},
		"reason":   &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the moderation GraphQL schema. The approveFeedback
// mutation is the only entry point; the query root carries a placeholder
// field because graphql-go requires a non-empty query type.
func NewSchema(moderator *Moderator) (graphql.Schema, error) {
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"approveFeedback": &graphql.Field{
				Type: approvalResponseType,
				Args: graphql.FieldConfigArgument{
					"feedback": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(feedbackInputType),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, ok := p.Args["feedback"].(map[string]interface{})
					if !ok {
						return nil, fmt.Errorf("invalid feedback argument")
					}
					sub := submissionFromArgs(raw)
					verdict, err := moderator.Moderate(p.Context, sub)
					if err != nil {
						return nil, fmt.Errorf("moderation check failed: %w", err)
					}
					return map[string]interface{}{
						"approved": verdict.Approved,
						"reason":   verdict.Reason,
					}, nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"_dummy": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "dummy", nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func submissionFromArgs(raw map[string]interface{}) types.FeedbackSubmission {
	var sub types.FeedbackSubmission
	sub.Name, _ = raw["name"].(string)
	sub.Email, _ = raw["email"].(string)
	sub.FeedbackType, _ = raw["feedbackType"].(string)
	sub.Service, _ = raw["service"].(string)
	sub.Message, _ = raw["message"].(string)
	sub.Rating, _ = raw["rating"].(int)
	sub.AttachScreenshot, _ = raw["attachScreenshot"].(bool)
	sub.AgreeToTerms, _ = raw["agreeToTerms"].(bool)
	return sub
}
