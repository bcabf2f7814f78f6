package main

import "casos_backend/internal/app"

func main() {
	app.Run()
}
