package mocks

import "github.com/magichome-go/magichome/common"
import "github.com/stretchr/testify/mock"

type Protocol struct {
	mock.Mock
}

// SetClient provides a mock function with given fields: client
func (_m *Protocol) SetClient(client common.Client) {
	_m.Called(client)
}

// Discover provides a mock function with given fields:
func (_m *Protocol) Discover() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Connect provides a mock function with given fields: addr
func (_m *Protocol) Connect(addr string) (common.Controller, error) {
	ret := _m.Called(addr)

	var r0 common.Controller
	if rf, ok := ret.Get(0).(func(string) common.Controller); ok {
		r0 = rf(addr)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(common.Controller)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(string) error); ok {
		r1 = rf(addr)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Close provides a mock function with given fields:
func (_m *Protocol) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetPower provides a mock function with given fields: state
func (_m *Protocol) SetPower(state bool) error {
	ret := _m.Called(state)

	var r0 error
	if rf, ok := ret.Get(0).(func(bool) error); ok {
		r0 = rf(state)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetColor provides a mock function with given fields: color
func (_m *Protocol) SetColor(color common.ColorState) error {
	ret := _m.Called(color)

	var r0 error
	if rf, ok := ret.Get(0).(func(common.ColorState) error); ok {
		r0 = rf(color)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
