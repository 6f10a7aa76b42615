package domain

import (
	"fmt"
	"strconv"
	"time"
)

const (
	SettingAuthAccessToken      = "auth_access_token"
	SettingAuthRefreshToken     = "auth_refresh_token"
	SettingAuthUserID           = "auth_user_id"
	SettingAuthSessionTimestamp = "auth_session_timestamp"
	SettingLastSyncTime         = "last_sync_time"
	SettingIsFirstLaunch        = "is_first_launch"
)

// Setting is a typed handle on a persisted scalar. Values are stored as strings.
type Setting[T any] struct {
	Name   string
	encode func(T) string
	decode func(string) (T, error)
}

func (s Setting[T]) Encode(value T) string {
	return s.encode(value)
}

func (s Setting[T]) Decode(raw string) (T, error) {
	value, err := s.decode(raw)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("decode setting %q: %w", s.Name, err)
	}

	return value, nil
}

var (
	AuthAccessToken  = StringSetting(SettingAuthAccessToken)
	AuthRefreshToken = StringSetting(SettingAuthRefreshToken)
	AuthUserID       = StringSetting(SettingAuthUserID)
	SessionTimestamp = TimeSetting(SettingAuthSessionTimestamp)
	LastSyncTime     = TimeSetting(SettingLastSyncTime)
	IsFirstLaunch    = BoolSetting(SettingIsFirstLaunch)
)

// SettingNames is the closed set of persisted settings.
var SettingNames = []string{
	SettingAuthAccessToken,
	SettingAuthRefreshToken,
	SettingAuthUserID,
	SettingAuthSessionTimestamp,
	SettingLastSyncTime,
	SettingIsFirstLaunch,
}

// SessionSettings lists every key written by a session save.
var SessionSettings = []string{
	SettingAuthAccessToken,
	SettingAuthRefreshToken,
	SettingAuthUserID,
	SettingAuthSessionTimestamp,
}

func StringSetting(name string) Setting[string] {
	return Setting[string]{
		Name:   name,
		encode: func(value string) string { return value },
		decode: func(raw string) (string, error) { return raw, nil },
	}
}

func BoolSetting(name string) Setting[bool] {
	return Setting[bool]{
		Name:   name,
		encode: strconv.FormatBool,
		decode: strconv.ParseBool,
	}
}

func TimeSetting(name string) Setting[time.Time] {
	return Setting[time.Time]{
		Name: name,
		encode: func(value time.Time) string {
			return value.UTC().Format(time.RFC3339Nano)
		},
		decode: parseSettingTime,
	}
}

// parseSettingTime also accepts epoch milliseconds, the format older clients wrote.
func parseSettingTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return parsed, nil
	}

	millis, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(millis).UTC(), nil
}
