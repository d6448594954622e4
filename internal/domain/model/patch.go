package model

import "reflect"

// Changes converte um patch em mapa coluna → valor.
// Apenas campos ponteiro com tag `column` e não nulos entram no mapa.
func Changes(patch any) map[string]any {
	changes := make(map[string]any)

	v := reflect.Indirect(reflect.ValueOf(patch))
	if v.Kind() != reflect.Struct {
		return changes
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		column := t.Field(i).Tag.Get("column")
		if column == "" {
			continue
		}
		field := v.Field(i)
		if field.Kind() != reflect.Pointer || field.IsNil() {
			continue
		}
		changes[column] = field.Elem().Interface()
	}

	return changes
}
