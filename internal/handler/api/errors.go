package api

import "commons-dinner/internal/pkg/errs"

var errUnauthenticated = errs.New("no authenticated user in context")
