// Package expr implements the pure, side-effect-free expression language used
// by entity, trigger, and styleground configurations for drawing and hitbox
// directives: arithmetic, string concatenation, comparisons, and a match
// construct, evaluated against a caller-supplied name environment.
package expr
