package dynamo_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/infra/dynamo"
)

func ptr[T any](v T) *T { return &v }

// fakeTable stores items in memory and returns them all on scan, two per page.
type fakeTable struct {
	items   []map[string]dbtypes.AttributeValue
	scans   []*dynamodb.ScanInput
	putErr  error
	scanErr error
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items = append(f.items, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	f.scans = append(f.scans, in)

	start := 0
	if in.ExclusiveStartKey != nil {
		start = int(in.ExclusiveStartKey["offset"].(*dbtypes.AttributeValueMemberN).Value[0] - '0')
	}
	end := min(start+2, len(f.items))

	out := &dynamodb.ScanOutput{Items: f.items[start:end]}
	if end < len(f.items) {
		out.LastEvaluatedKey = map[string]dbtypes.AttributeValue{
			"offset": &dbtypes.AttributeValueMemberN{Value: string(rune('0' + end))},
		}
	}
	return out, nil
}

var base = time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

func mcq(q string, i int) *entities.MCQ {
	return &entities.MCQ{
		Question:      q,
		Options:       entities.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectAnswer: entities.LabelA,
		Difficulty:    entities.DifficultyEasy,
		QuestionType:  entities.QuestionTypePYQ,
		Year:          ptr(2019),
		Subject:       ptr("Geography"),
		Tags:          []string{"maps"},
		CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		UpdatedAt:     base.Add(time.Duration(i) * time.Minute),
	}
}

func questions(mcqs []entities.MCQ) []string {
	out := []string{}
	for _, m := range mcqs {
		out = append(out, m.Question)
	}
	return out
}

func TestStore_CreateAndList(t *testing.T) {
	table := &fakeTable{}
	s := dynamo.NewStore(table, "mcqs")
	ctx := context.Background()

	// inserted out of order; List sorts by creation time across pages
	ids, err := s.CreateMany(ctx, []*entities.MCQ{mcq("c", 2), mcq("a", 0), mcq("b", 1)})
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	if len(ids) != 3 || ids[0] == "" || ids[0] == ids[1] {
		t.Fatalf("ids = %v", ids)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(questions(all), []string{"a", "b", "c"}) {
		t.Fatalf("order = %v", questions(all))
	}
	if len(table.scans) != 2 {
		t.Fatalf("expected 2 scan pages, got %d", len(table.scans))
	}

	got := all[0]
	if got.Year == nil || *got.Year != 2019 || *got.Subject != "Geography" || !got.CreatedAt.Equal(base) {
		t.Fatalf("decoded %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, []string{"maps"}) {
		t.Fatalf("tags = %v", got.Tags)
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if !reflect.DeepEqual(questions(recent), []string{"c", "b"}) {
		t.Fatalf("recent = %v", questions(recent))
	}
}

func TestStore_CreateDuplicate(t *testing.T) {
	table := &fakeTable{putErr: &dbtypes.ConditionalCheckFailedException{Message: aws.String("exists")}}
	s := dynamo.NewStore(table, "mcqs")

	if _, err := s.Create(context.Background(), mcq("a", 0)); !errors.Is(err, dynamo.ErrDuplicateID) {
		t.Fatalf("err = %v", err)
	}
}

func TestStore_ScanError(t *testing.T) {
	cause := errors.New("throttled")
	s := dynamo.NewStore(&fakeTable{scanErr: cause}, "mcqs")

	if _, err := s.List(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("err = %v", err)
	}
}

func TestStore_QueryPassesFilter(t *testing.T) {
	table := &fakeTable{}
	s := dynamo.NewStore(table, "mcqs")

	_, err := s.Query(context.Background(), entities.FilterSpec{Difficulty: ptr(entities.DifficultyHard)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(table.scans) != 1 {
		t.Fatalf("scans = %d", len(table.scans))
	}
	in := table.scans[0]
	if aws.ToString(in.FilterExpression) != "#difficulty = :difficulty" || aws.ToString(in.TableName) != "mcqs" {
		t.Fatalf("scan input %+v", in)
	}
}

func TestBuildFilterExpression(t *testing.T) {
	expr, names, values := dynamo.BuildFilterExpression(entities.FilterSpec{Subject: ptr("x"), Year: ptr(2020)})
	if expr != "" || names != nil || values != nil {
		t.Fatalf("expected no push-down, got %q", expr)
	}

	expr, names, values = dynamo.BuildFilterExpression(entities.FilterSpec{
		Difficulty:   ptr(entities.DifficultyMedium),
		QuestionType: ptr(entities.QuestionTypePYQ),
		Year:         ptr(2021),
	})
	if expr != "#difficulty = :difficulty AND #question_type = :question_type AND #year = :year" {
		t.Fatalf("expr = %q", expr)
	}
	if names["#year"] != "year" || len(names) != 3 {
		t.Fatalf("names = %v", names)
	}
	year, ok := values[":year"].(*dbtypes.AttributeValueMemberN)
	if !ok || year.Value != "2021" {
		t.Fatalf(":year = %#v", values[":year"])
	}
	if v := values[":question_type"].(*dbtypes.AttributeValueMemberS); v.Value != "PYQ" {
		t.Fatalf(":question_type = %q", v.Value)
	}
}
