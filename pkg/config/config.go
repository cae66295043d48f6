// Package config loads the environment configuration shared by the lambdas
// and remindctl.
package config

import "os"

// Defaults applied when the environment leaves a value unset.
const (
	DefaultTableName     = "reminders"
	DefaultScheduleGroup = "default"
)

// Config holds the reminder subsystem settings.
type Config struct {
	// TableName is the DynamoDB reminders table.
	TableName string
	// ProcessReminderARN is the fire-handler lambda the scheduler invokes.
	ProcessReminderARN string
	// SchedulerRoleARN is the execution role the scheduler assumes to invoke
	// the fire handler.
	SchedulerRoleARN string
	// ScheduleGroup is the EventBridge Scheduler group holding reminder
	// triggers.
	ScheduleGroup string
	// FromAddress is the verified SES sender for notifications.
	FromAddress string
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		TableName:          getEnv("TABLE_NAME", DefaultTableName),
		ProcessReminderARN: os.Getenv("PROCESS_REMINDER_FUNCTION_ARN"),
		SchedulerRoleARN:   os.Getenv("SCHEDULER_EXECUTION_ROLE_ARN"),
		ScheduleGroup:      getEnv("REMINDER_SCHEDULE_GROUP", DefaultScheduleGroup),
		FromAddress:        os.Getenv("FROM_EMAIL_ADDRESS"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
