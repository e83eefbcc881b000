package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockStore is an in-memory DocumentStore covering the store operations the
// services exercise: keyed get/put/delete, the SET/ADD update expressions
// in use, equality/begins_with key conditions, batch writes, and filtered
// scans. Failures are injected per operation+table.
type mockStore struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	failures map[string]error
	calls    map[string]int
}

var _ DocumentStore = (*mockStore)(nil)

var mockTableKeys = map[string][]string{
	models.LikesTable:         {"PK", "SK"},
	models.FollowsTable:       {"PK", "SK"},
	models.ConversationsTable: {"conversationId"},
	models.MessagesTable:      {"conversationId", "SK"},
	models.BroadcastsTable:    {"userId"},
	models.UserProfilesTable:  {"userId"},
}

func newMockStore() *mockStore {
	return &mockStore{
		tables:   make(map[string]map[string]map[string]types.AttributeValue),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// failWith makes op fail for the given table; op is the method name,
// e.g. "PutItem", "BatchWriteItems", "UpdateItem".
func (m *mockStore) failWith(op, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op+":"+table] = err
}

func (m *mockStore) clearFailure(op, table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, op+":"+table)
}

func (m *mockStore) writeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls["PutItem"] + m.calls["UpdateItem"] + m.calls["DeleteItem"] + m.calls["BatchWriteItems"]
}

func (m *mockStore) itemCount(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

func (m *mockStore) checkFailure(op, table string) error {
	m.calls[op]++
	if err, ok := m.failures[op+":"+table]; ok {
		return err
	}
	return nil
}

func attrS(item map[string]types.AttributeValue, field string) string {
	if av, ok := item[field]; ok {
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			return s.Value
		}
	}
	return ""
}

func (m *mockStore) keyOf(table string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, field := range mockTableKeys[table] {
		parts = append(parts, attrS(item, field))
	}
	return strings.Join(parts, "|")
}

// putRaw stores a pre-marshalled item, bypassing call accounting. Tests use
// it to seed legacy or malformed records directly.
func (m *mockStore) putRaw(table string, item map[string]types.AttributeValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	m.tables[table][m.keyOf(table, item)] = item
}

func (m *mockStore) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("GetItem", table); err != nil {
		return nil, err
	}
	item, ok := m.tables[table][m.keyOf(table, key)]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *mockStore) PutItem(ctx context.Context, table string, item interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("PutItem", table); err != nil {
		return err
	}
	marshalled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	m.tables[table][m.keyOf(table, marshalled)] = marshalled
	return nil
}

func (m *mockStore) UpdateItem(ctx context.Context, table string, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("UpdateItem", table); err != nil {
		return nil, err
	}

	k := m.keyOf(table, key)
	item, ok := m.tables[table][k]
	if !ok {
		item = make(map[string]types.AttributeValue)
		for f, v := range key {
			item[f] = v
		}
		if m.tables[table] == nil {
			m.tables[table] = make(map[string]map[string]types.AttributeValue)
		}
		m.tables[table][k] = item
	}

	resolve := func(name string) string {
		if strings.HasPrefix(name, "#") {
			return names[name]
		}
		return name
	}

	switch {
	case strings.HasPrefix(updateExpression, "SET "):
		for _, clause := range strings.Split(strings.TrimPrefix(updateExpression, "SET "), ",") {
			parts := strings.SplitN(strings.TrimSpace(clause), "=", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("mock cannot parse clause %q", clause)
			}
			field := resolve(strings.TrimSpace(parts[0]))
			item[field] = values[strings.TrimSpace(parts[1])]
		}
	case strings.HasPrefix(updateExpression, "ADD "):
		fields := strings.Fields(strings.TrimPrefix(updateExpression, "ADD "))
		if len(fields) != 2 {
			return nil, fmt.Errorf("mock cannot parse expression %q", updateExpression)
		}
		field := resolve(fields[0])
		current := 0
		if n, ok := item[field].(*types.AttributeValueMemberN); ok {
			current, _ = strconv.Atoi(n.Value)
		}
		delta := 0
		if n, ok := values[fields[1]].(*types.AttributeValueMemberN); ok {
			delta, _ = strconv.Atoi(n.Value)
		}
		item[field] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + delta)}
	default:
		return nil, fmt.Errorf("mock cannot parse expression %q", updateExpression)
	}

	return item, nil
}

func (m *mockStore) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("DeleteItem", table); err != nil {
		return err
	}
	delete(m.tables[table], m.keyOf(table, key))
	return nil
}

func matchesCondition(item map[string]types.AttributeValue, condition string, values map[string]types.AttributeValue, names map[string]string) bool {
	resolve := func(name string) string {
		if strings.HasPrefix(name, "#") {
			return names[name]
		}
		return name
	}
	for _, clause := range strings.Split(condition, " AND ") {
		clause = strings.TrimSpace(clause)
		if strings.HasPrefix(clause, "begins_with(") {
			inner := strings.TrimSuffix(strings.TrimPrefix(clause, "begins_with("), ")")
			parts := strings.SplitN(inner, ",", 2)
			field := resolve(strings.TrimSpace(parts[0]))
			want := values[strings.TrimSpace(parts[1])]
			prefix, _ := want.(*types.AttributeValueMemberS)
			if prefix == nil || !strings.HasPrefix(attrS(item, field), prefix.Value) {
				return false
			}
			continue
		}
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return false
		}
		field := resolve(strings.TrimSpace(parts[0]))
		want, _ := values[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
		if want == nil || attrS(item, field) != want.Value {
			return false
		}
	}
	return true
}

func (m *mockStore) query(table, condition string, values map[string]types.AttributeValue, names map[string]string, limit int32) []map[string]types.AttributeValue {
	var matches []map[string]types.AttributeValue
	for _, item := range m.tables[table] {
		if matchesCondition(item, condition, values, names) {
			matches = append(matches, item)
		}
		if limit > 0 && int32(len(matches)) >= limit {
			break
		}
	}
	return matches
}

func (m *mockStore) QueryItems(ctx context.Context, table string, condition string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("QueryItems", table); err != nil {
		return nil, err
	}
	return m.query(table, condition, values, names, limit), nil
}

func (m *mockStore) QueryItemsWithOptions(ctx context.Context, table string, condition string, values map[string]types.AttributeValue, names map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("QueryItemsWithOptions", table); err != nil {
		return nil, err
	}
	return m.query(table, condition, values, names, limit), nil
}

func (m *mockStore) QueryItemsWithIndex(ctx context.Context, table string, index string, condition string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("QueryItemsWithIndex", table); err != nil {
		return nil, err
	}
	return m.query(table, condition, values, names, limit), nil
}

func (m *mockStore) BatchWriteItems(ctx context.Context, table string, writes []types.WriteRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("BatchWriteItems", table); err != nil {
		return err
	}
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	for _, write := range writes {
		if write.PutRequest != nil {
			item := write.PutRequest.Item
			m.tables[table][m.keyOf(table, item)] = item
		}
	}
	return nil
}

func (m *mockStore) ScanWithFilter(ctx context.Context, table string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFailure("ScanWithFilter", table); err != nil {
		return err
	}

	var matches []map[string]types.AttributeValue
	for _, item := range m.tables[table] {
		excluded := false
		for field, value := range excludeFields {
			if attrS(item, field) == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc != nil && !filterFunc(item) {
			continue
		}
		matches = append(matches, item)
	}

	return attributevalue.UnmarshalListOfMaps(matches, result)
}
