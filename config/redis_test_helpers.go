package config

import "github.com/redis/go-redis/v9"

// SetRedisClientForTest replaces the process Redis client; tests use it to inject a redismock client.
func SetRedisClientForTest(client *redis.Client) {
	setRedisClient(client)
}

// ResetRedisClientForTest clears the process Redis client.
func ResetRedisClientForTest() {
	SetRedisClientForTest(nil)
}
