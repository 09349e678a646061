package mocks

import "github.com/magichome-go/magichome/common"
import "github.com/stretchr/testify/mock"

type Controller struct {
	mock.Mock
}

// Addr provides a mock function with given fields:
func (_m *Controller) Addr() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// ID provides a mock function with given fields:
func (_m *Controller) ID() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Model provides a mock function with given fields:
func (_m *Controller) Model() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// TurnOn provides a mock function with given fields:
func (_m *Controller) TurnOn() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TurnOff provides a mock function with given fields:
func (_m *Controller) TurnOff() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// PowerToggle provides a mock function with given fields:
func (_m *Controller) PowerToggle() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Power provides a mock function with given fields:
func (_m *Controller) Power() (common.Power, error) {
	ret := _m.Called()

	var r0 common.Power
	if rf, ok := ret.Get(0).(func() common.Power); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(common.Power)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func() error); ok {
		r1 = rf()
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetColor provides a mock function with given fields: color
func (_m *Controller) SetColor(color common.ColorState) error {
	ret := _m.Called(color)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.ColorState) error); ok {
		r0 = rf(color)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// State provides a mock function with given fields:
func (_m *Controller) State() (common.State, error) {
	ret := _m.Called()

	var r0 common.State
	if rf, ok := ret.Get(0).(func() common.State); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(common.State)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func() error); ok {
		r1 = rf()
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetState provides a mock function with given fields: state
func (_m *Controller) SetState(state common.State) error {
	ret := _m.Called(state)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.State) error); ok {
		r0 = rf(state)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
