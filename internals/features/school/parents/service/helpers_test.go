package service_test

import (
	"github.com/google/uuid"

	scheduleDTO "schoolku_backend/internals/features/school/schedules/dto"
)

func scheduleCreate(title, date string, classID *uuid.UUID) scheduleDTO.CreateScheduleRequest {
	return scheduleDTO.CreateScheduleRequest{
		Title: title, Type: "CLASS", Date: date, StartTime: "08:00", EndTime: "09:00", ClassID: classID,
	}
}
