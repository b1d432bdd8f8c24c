package domain

type Player struct {
	uuid      string
	gameUuid  string
	playerCli Client
	color     Cell
}

func NewPlayer(gameUuid string, cli Client, color Cell) Player {
	return Player{
		uuid:      cli.Uuid(),
		gameUuid:  gameUuid,
		playerCli: cli,
		color:     color,
	}
}

func (p Player) Uuid() string {
	return p.uuid
}

func (p Player) GameUuid() string {
	return p.gameUuid
}

func (p Player) SendMessage(msg Message) error {
	return p.playerCli.WriteMessage(msg)
}

func (p Player) ReceiveMessage() (Message, error) {
	return p.playerCli.ReadMessage()
}

func (p Player) Color() Cell {
	return p.color
}
