// Package factory builds drivers and button registries from a Config.
package factory

import "github.com/allape/gogger"

var l = gogger.New("factory")
