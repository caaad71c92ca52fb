package service

import "time"

// Clock seams for tests in service_test.

func SetChargeClock(s *ChargeService, now func() time.Time) { s.now = now }

func SetDashboardClock(s *DashboardService, now func() time.Time) { s.now = now }
