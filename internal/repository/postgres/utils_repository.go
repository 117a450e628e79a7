package postgres

import (
	"fmt"
	"strings"
)

// Лимиты выборок
const (
	// DefaultChunkSize - размер порции при полной выгрузке таблицы
	DefaultChunkSize = 1000
	// MaxQueryLimit - максимальный лимит для запросов
	MaxQueryLimit = 1000
)

// whereBuilder собирает условия WHERE с позиционными параметрами.
// В шаблоне условия номер параметра подставляется через %[1]d.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (b *whereBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

// clause возвращает " WHERE ..." или пустую строку
func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// next - номер следующего позиционного параметра
func (b *whereBuilder) next() int {
	return len(b.args) + 1
}

// containsPattern строит шаблон ILIKE для поиска подстроки
func containsPattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
