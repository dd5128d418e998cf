package tags

import "github.com/yohamta/donburi"

var (
	Remote = donburi.NewTag().SetName("Remote")
)
