// Package ecs provides ECS adapters for easel.
package ecs
