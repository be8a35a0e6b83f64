package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var snowflakeNode *snowflake.Node

var Models = []interface{}{
	&User{}, &Site{}, &Asset{}, &Ticket{}, &Agent{}, &AuditLog{},
}

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

func GenerateID() uint {
	return uint(snowflakeNode.Generate())
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

// JSONMap stores an opaque structured blob in a JSON column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(val interface{}) error {
	if val == nil {
		*m = nil
		return nil
	}
	switch v := val.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for JSONMap", val)
	}
}

func (JSONMap) GormDataType() string {
	return "json"
}
