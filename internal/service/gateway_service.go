package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/authz"
	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/repository"

	"github.com/shopspring/decimal"
)

// GatewayRequest 通用查询网关请求
type GatewayRequest struct {
	Query   string                 `json:"query"`
	Action  string                 `json:"action"`
	Data    json.RawMessage        `json:"data"`
	ID      string                 `json:"id"`
	Filters map[string]interface{} `json:"filters"`
}

// GatewayService 通用查询网关
// 管理端所有数据读写经由一个入口，资源必须在注册表中声明，
// 角色权限在服务端判定，字段经白名单校验后才落库。
type GatewayService struct {
	repo     repository.GatewayRepository
	authz    *authz.Service
	registry map[string]*resourceSpec
}

// NewGatewayService 创建网关服务实例
func NewGatewayService(repo repository.GatewayRepository, authzService *authz.Service) *GatewayService {
	return &GatewayService{
		repo:     repo,
		authz:    authzService,
		registry: buildResourceRegistry(),
	}
}

// Execute 执行网关请求
func (s *GatewayService) Execute(admin *models.Admin, req GatewayRequest) (interface{}, error) {
	spec, ok := s.registry[strings.TrimSpace(req.Query)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, req.Query)
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	switch action {
	case constants.GatewayActionSelect,
		constants.GatewayActionInsert,
		constants.GatewayActionUpdate,
		constants.GatewayActionUpsert,
		constants.GatewayActionDelete:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, req.Action)
	}

	authzAction := constants.AuthzActionWrite
	if action == constants.GatewayActionSelect {
		authzAction = constants.AuthzActionRead
	}
	allowed, err := s.authz.EnforceRole(admin.Role, spec.name, authzAction)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: role %s cannot %s %s", ErrForbidden, admin.Role, authzAction, spec.name)
	}

	switch action {
	case constants.GatewayActionSelect:
		return s.selectRows(spec, req.Filters)
	case constants.GatewayActionInsert:
		return s.insert(spec, req.Data)
	case constants.GatewayActionUpdate:
		return s.update(spec, req.ID, req.Data)
	case constants.GatewayActionUpsert:
		return s.upsert(spec, req)
	default:
		return s.delete(spec, req.ID)
	}
}

// selectRows 等值过滤查询，按创建时间倒序返回全部命中行
func (s *GatewayService) selectRows(spec *resourceSpec, filters map[string]interface{}) (interface{}, error) {
	validated := make(map[string]interface{}, len(filters))
	for column, value := range filters {
		if _, ok := spec.filterColumns[column]; !ok {
			return nil, fmt.Errorf("%w: filter column %s not allowed for %s", ErrInvalidPayload, column, spec.name)
		}
		switch value.(type) {
		case string, float64, bool, nil:
		default:
			return nil, fmt.Errorf("%w: filter value for %s must be scalar", ErrInvalidPayload, column)
		}
		validated[column] = value
	}

	dest := spec.newSlice()
	if err := s.repo.Select(spec.newModel(), dest, validated); err != nil {
		return nil, err
	}
	return dest, nil
}

// insert 插入单条或多条记录
func (s *GatewayService) insert(spec *resourceSpec, data json.RawMessage) (interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: data is required", ErrInvalidPayload)
	}

	if trimmed[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if len(elements) == 0 {
			return nil, fmt.Errorf("%w: data array is empty", ErrInvalidPayload)
		}
		created := make([]interface{}, 0, len(elements))
		for _, element := range elements {
			model, err := s.decodeRecord(spec, element)
			if err != nil {
				return nil, err
			}
			if err := s.repo.Create(model); err != nil {
				return nil, err
			}
			created = append(created, model)
		}
		return created, nil
	}

	model, err := s.decodeRecord(spec, trimmed)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(model); err != nil {
		return nil, err
	}
	return model, nil
}

// update 按主键更新白名单字段，返回更新后的行
func (s *GatewayService) update(spec *resourceSpec, id string, data json.RawMessage) (interface{}, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidPayload)
	}
	fields, err := s.validateWriteFields(spec, data)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.UpdateFields(spec.newModel(), id, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, spec.name, id)
	}

	dest := spec.newModel()
	if _, err := s.repo.FindOne(spec.newModel(), dest, "id", id); err != nil {
		return nil, err
	}
	return dest, nil
}

// upsert 统一的「有则更新、无则插入」
// 声明了自然键的资源按自然键合并，其余按主键。
func (s *GatewayService) upsert(spec *resourceSpec, req GatewayRequest) (interface{}, error) {
	trimmed := bytes.TrimSpace(req.Data)
	if len(trimmed) == 0 || trimmed[0] == '[' {
		return nil, fmt.Errorf("%w: upsert requires a single object payload", ErrInvalidPayload)
	}

	if spec.conflictColumn != "" {
		var raw map[string]interface{}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		keyValue, _ := raw[spec.conflictField].(string)
		if strings.TrimSpace(keyValue) == "" {
			return nil, fmt.Errorf("%w: %s is required for upsert", ErrInvalidPayload, spec.conflictField)
		}

		existing := spec.newModel()
		found, err := s.repo.FindOne(spec.newModel(), existing, spec.conflictColumn, keyValue)
		if err != nil {
			return nil, err
		}
		if found {
			return s.update(spec, modelID(existing), trimmed)
		}
		return s.insertOne(spec, trimmed)
	}

	// 主键资源：带 id 且命中则更新，否则插入
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return s.insertOne(spec, trimmed)
	}
	existing := spec.newModel()
	found, err := s.repo.FindOne(spec.newModel(), existing, "id", id)
	if err != nil {
		return nil, err
	}
	if found {
		return s.update(spec, id, trimmed)
	}
	model, err := s.decodeRecord(spec, trimmed)
	if err != nil {
		return nil, err
	}
	setModelID(model, id)
	if err := s.repo.Create(model); err != nil {
		return nil, err
	}
	return model, nil
}

// delete 按主键删除；删除不存在的行返回空数据而非错误
func (s *GatewayService) delete(spec *resourceSpec, id string) (interface{}, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidPayload)
	}
	if _, err := s.repo.DeleteByID(spec.newModel(), id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *GatewayService) insertOne(spec *resourceSpec, data json.RawMessage) (interface{}, error) {
	model, err := s.decodeRecord(spec, data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(model); err != nil {
		return nil, err
	}
	return model, nil
}

// decodeRecord 把请求载荷解码为类型化模型
// 字段先过白名单与 prepare 钩子，再严格解码，未知字段与类型错误都拒绝。
func (s *GatewayService) decodeRecord(spec *resourceSpec, data json.RawMessage) (interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for field := range raw {
		if _, ok := spec.writeColumns[field]; !ok {
			return nil, fmt.Errorf("%w: field %s not allowed for %s", ErrInvalidPayload, field, spec.name)
		}
	}

	var computed map[string]interface{}
	if spec.prepare != nil {
		var err error
		computed, err = spec.prepare(raw)
		if err != nil {
			return nil, err
		}
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	model := spec.newModel()
	decoder := json.NewDecoder(bytes.NewReader(normalized))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if len(computed) > 0 && spec.applyComputed != nil {
		spec.applyComputed(model, computed)
	}
	return model, nil
}

// validateWriteFields 校验并转换更新字段集合
func (s *GatewayService) validateWriteFields(spec *resourceSpec, data json.RawMessage) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: data is required", ErrInvalidPayload)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for field := range raw {
		if _, ok := spec.writeColumns[field]; !ok {
			return nil, fmt.Errorf("%w: field %s not allowed for %s", ErrInvalidPayload, field, spec.name)
		}
	}

	var computed map[string]interface{}
	if spec.prepare != nil {
		var err error
		computed, err = spec.prepare(raw)
		if err != nil {
			return nil, err
		}
	}

	// 类型校验：剩余字段必须能严格解码进模型
	if len(raw) > 0 {
		normalized, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		probe := spec.newModel()
		decoder := json.NewDecoder(bytes.NewReader(normalized))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(probe); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	fields := make(map[string]interface{}, len(raw)+len(computed))
	for column, value := range raw {
		converted, err := convertColumnValue(spec.columnKinds[column], column, value)
		if err != nil {
			return nil, err
		}
		fields[column] = converted
	}
	for column, value := range computed {
		fields[column] = value
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to write", ErrInvalidPayload)
	}
	return fields, nil
}

// convertColumnValue 把 JSON 解码出的泛型值转换成可落库的类型
func convertColumnValue(kind columnKind, column string, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	switch kind {
	case colJSON:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidPayload, column)
		}
		return models.JSON(obj), nil
	case colStrings:
		items, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string array", ErrInvalidPayload, column)
		}
		arr := make(models.StringArray, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must contain only strings", ErrInvalidPayload, column)
			}
			arr = append(arr, str)
		}
		return arr, nil
	case colMoney:
		switch v := value.(type) {
		case float64:
			return models.NewMoneyFromDecimal(decimal.NewFromFloat(v)), nil
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s is not a valid amount", ErrInvalidPayload, column)
			}
			return models.NewMoneyFromDecimal(d), nil
		default:
			return nil, fmt.Errorf("%w: %s must be a number or string", ErrInvalidPayload, column)
		}
	default:
		return value, nil
	}
}

func modelID(model interface{}) string {
	switch m := model.(type) {
	case *models.Category:
		return m.ID
	case *models.Product:
		return m.ID
	case *models.Order:
		return m.ID
	case *models.Customer:
		return m.ID
	case *models.Admin:
		return m.ID
	case *models.Integration:
		return m.ID
	case *models.SEOSetting:
		return m.ID
	default:
		return ""
	}
}

func setModelID(model interface{}, id string) {
	switch m := model.(type) {
	case *models.Category:
		m.ID = id
	case *models.Product:
		m.ID = id
	case *models.Order:
		m.ID = id
	case *models.Customer:
		m.ID = id
	case *models.Admin:
		m.ID = id
	case *models.Integration:
		m.ID = id
	case *models.SEOSetting:
		m.ID = id
	}
}
