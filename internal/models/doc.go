// Package models lists the models a translation backend can use, so
// users can pick a value for --model.
package models
