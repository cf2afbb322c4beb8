package spool

import (
	"github.com/danpasecinic/spool/internal/scope"
)

type Lifetime = scope.Lifetime

type Visibility = scope.Visibility

const (
	Transient    = scope.Transient
	Registration = scope.Registration
)

const (
	Private = scope.Private
	Public  = scope.Public
)

func ParseLifetime(s string) (Lifetime, error) {
	return scope.ParseLifetime(s)
}

func ParseVisibility(s string) (Visibility, error) {
	return scope.ParseVisibility(s)
}
