package shared

import (
	"context"
	"fmt"
	"math"
	"parking/shared/cache"
	"parking/shared/constant"
	"parking/shared/dto"
	"parking/shared/timezone"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToInt(value string) (int, error) {
	res, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", value, err)
	}

	return res, nil
}

func ConvertStringToFloat(value string) (float64, error) {
	res, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", value, err)
	}

	return res, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// RoundTo rounds value half away from zero to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))

	return math.Round(value*factor) / factor
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, fieldID, id))
}

func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key from paging params and the rendered filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fmt.Sprintf("%s=%v", k, args[k]))
	}

	return BuildCacheKey(prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		strings.Join(values, ","),
	)
}

// InvalidateCaches drops every key under prefix. Failures are only logged.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
