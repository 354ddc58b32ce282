// Package scheduler runs recurring jobs on cron specs.
package scheduler
