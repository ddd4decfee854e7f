package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"studio-backend/internal/domain"
)

const (
	pkTestimonials  = "TESTIMONIAL"
	skIDPrefix      = "ID#"
	pkJourneyPrefix = "JOURNEY#"
	skSessionPrefix = "SESSION#"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Client reads the records that the content pipeline and the session tracker
// write into the shared site table. Everything here is read-only: this
// service computes over external data, it never persists.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// ListTestimonials returns every published testimonial, following pagination.
func (c *Client) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	items, err := c.queryAll(ctx, pkTestimonials, skIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("repository: ListTestimonials: %w", err)
	}
	out := make([]domain.Testimonial, 0, len(items))
	for _, item := range items {
		t, err := itemToTestimonial(item)
		if err != nil {
			return nil, fmt.Errorf("repository: ListTestimonials unmarshal: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// ListSessions returns the recorded user sessions for one journey.
func (c *Client) ListSessions(ctx context.Context, journeyID string) ([]domain.UserSession, error) {
	journeyID = strings.TrimSpace(journeyID)
	if journeyID == "" {
		return nil, errors.New("repository: ListSessions: journey id is required")
	}
	items, err := c.queryAll(ctx, pkJourneyPrefix+journeyID, skSessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("repository: ListSessions: %w", err)
	}
	out := make([]domain.UserSession, 0, len(items))
	for _, item := range items {
		s, err := itemToSession(item, journeyID)
		if err != nil {
			return nil, fmt.Errorf("repository: ListSessions unmarshal: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// queryAll pages through a partition until DynamoDB stops returning a
// continuation key.
func (c *Client) queryAll(ctx context.Context, pk, skPrefix string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		out, err := c.api.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(c.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: pk},
				":prefix": &types.AttributeValueMemberS{Value: skPrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// itemToTestimonial converts a DynamoDB attribute map to a Testimonial.
// Featured and verified default to false when absent. A missing rating
// decodes as zero and is rejected later by the stats boundary validation, so
// a broken record fails loudly instead of skewing the averages.
func itemToTestimonial(item map[string]types.AttributeValue) (domain.Testimonial, error) {
	sk, err := strAttr(item, "SK")
	if err != nil {
		return domain.Testimonial{}, err
	}
	name, err := strAttr(item, "name")
	if err != nil {
		return domain.Testimonial{}, err
	}
	text, err := strAttr(item, "text")
	if err != nil {
		return domain.Testimonial{}, err
	}
	service, err := strAttr(item, "service")
	if err != nil {
		return domain.Testimonial{}, err
	}
	rating, _ := intAttr(item, "rating")
	date, _ := strAttr(item, "date") // optional

	return domain.Testimonial{
		ID:       strings.TrimPrefix(sk, skIDPrefix),
		Name:     name,
		Text:     text,
		Rating:   rating,
		Service:  domain.Service(service),
		Featured: boolAttr(item, "featured"),
		Verified: boolAttr(item, "verified"),
		Date:     date,
	}, nil
}

// itemToSession converts a DynamoDB attribute map to a UserSession.
func itemToSession(item map[string]types.AttributeValue, journeyID string) (domain.UserSession, error) {
	sk, err := strAttr(item, "SK")
	if err != nil {
		return domain.UserSession{}, err
	}
	start, err := timeAttr(item, "startTime")
	if err != nil {
		return domain.UserSession{}, err
	}
	last, err := timeAttr(item, "lastActivity")
	if err != nil {
		return domain.UserSession{}, err
	}
	currentStep, _ := strAttr(item, "currentStep") // optional
	exitPoint, _ := strAttr(item, "exitPoint")     // optional

	return domain.UserSession{
		SessionID:               strings.TrimPrefix(sk, skSessionPrefix),
		JourneyID:               journeyID,
		CurrentStep:             currentStep,
		StartTime:               start,
		LastActivity:            last,
		CompletedSteps:          strListAttr(item, "completedSteps"),
		ExitPoint:               exitPoint,
		ConversionGoalsAchieved: strListAttr(item, "goalsAchieved"),
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}

func boolAttr(item map[string]types.AttributeValue, key string) bool {
	b, ok := item[key].(*types.AttributeValueMemberBOOL)
	return ok && b.Value
}

func strListAttr(item map[string]types.AttributeValue, key string) []string {
	l, ok := item[key].(*types.AttributeValueMemberL)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l.Value))
	for _, e := range l.Value {
		if s, ok := e.(*types.AttributeValueMemberS); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

func timeAttr(item map[string]types.AttributeValue, key string) (time.Time, error) {
	raw, err := strAttr(item, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return t, nil
}
